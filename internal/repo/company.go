package repo

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
)

func (r *GormRepo) CreateCompany(ctx context.Context, c *models.Company) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &company, nil
}

func (r *GormRepo) ListCompanies(ctx context.Context, q string, offset, limit int) ([]models.Company, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Company{})
	if q != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(q))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *GormRepo) SaveCompany(ctx context.Context, c *models.Company) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) CountJobsForCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Job{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *GormRepo) DeleteCompany(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gormNotFound, "company")
	}
	return nil
}
