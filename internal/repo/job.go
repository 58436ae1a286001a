package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/job_board/internal/models"
)

// JobFilter narrows job listings. Empty fields are ignored; Status defaults
// to open at the service layer.
type JobFilter struct {
	Query          string
	Location       string
	EmploymentType string
	Remote         *bool
	CompanyID      string
	PostedBy       string
	Status         string
}

// likePattern builds a case-insensitive contains pattern. Use it with
// ESCAPE '!' so user input cannot inject wildcards.
func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(s) + "%"
}

func (f JobFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')`, p, p)
	}
	if f.Location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '!'`, likePattern(f.Location))
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.Remote != nil {
		q = q.Where("remote = ?", *f.Remote)
	}
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.PostedBy != "" {
		q = q.Where("posted_by = ?", f.PostedBy)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *GormRepo) CreateJob(ctx context.Context, j *models.Job) error {
	return r.DB.WithContext(ctx).Create(j).Error
}

func (r *GormRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		return nil, notFound(err, "job")
	}
	return &job, nil
}

func (r *GormRepo) ListJobs(ctx context.Context, f JobFilter, offset, limit int) ([]models.Job, int64, error) {
	query := f.apply(r.DB.WithContext(ctx).Model(&models.Job{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	if err := query.Preload("Company").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// GetJobsByIDs returns the jobs in the order of ids, skipping missing ones.
func (r *GormRepo) GetJobsByIDs(ctx context.Context, ids []string) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	var found []models.Job
	if err := r.DB.WithContext(ctx).Preload("Company").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Job, len(found))
	for _, j := range found {
		byID[j.ID] = j
	}
	jobs := make([]models.Job, 0, len(found))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (r *GormRepo) SaveJob(ctx context.Context, j *models.Job) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(j).Error
}

// DeleteJob removes the job together with its applications and saved-job rows.
func (r *GormRepo) DeleteJob(ctx context.Context, id string) error {
	return r.Transaction(ctx, func(tx *GormRepo) error {
		db := tx.DB.WithContext(ctx)
		if err := db.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := db.Where("job_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		res := db.Where("id = ?", id).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gormNotFound, "job")
		}
		return nil
	})
}
