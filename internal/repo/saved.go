package repo

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
)

// SaveJobForUser is idempotent: saving an already saved job returns the
// existing row.
func (r *GormRepo) SaveJobForUser(ctx context.Context, userID, jobID string) (*models.SavedJob, error) {
	saved := models.SavedJob{UserID: userID, JobID: jobID}
	if err := r.DB.WithContext(ctx).
		Where(models.SavedJob{UserID: userID, JobID: jobID}).
		FirstOrCreate(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *GormRepo) UnsaveJob(ctx context.Context, userID, jobID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gormNotFound, "saved job")
	}
	return nil
}

func (r *GormRepo) ListSavedJobs(ctx context.Context, userID string, offset, limit int) ([]models.SavedJob, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.SavedJob{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var saved []models.SavedJob
	if err := query.Preload("Job").Preload("Job.Company").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&saved).Error; err != nil {
		return nil, 0, err
	}
	return saved, total, nil
}
