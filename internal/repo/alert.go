package repo

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
)

func (r *GormRepo) CreateAlert(ctx context.Context, a *models.JobAlert) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) GetAlert(ctx context.Context, id string) (*models.JobAlert, error) {
	var alert models.JobAlert
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, notFound(err, "job alert")
	}
	return &alert, nil
}

func (r *GormRepo) ListAlerts(ctx context.Context, userID string) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

// ListActiveAlerts returns every active alert not owned by excludeUserID.
func (r *GormRepo) ListActiveAlerts(ctx context.Context, excludeUserID string) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	err := r.DB.WithContext(ctx).
		Where("active = ? AND user_id <> ?", true, excludeUserID).
		Find(&alerts).Error
	return alerts, err
}

func (r *GormRepo) SaveAlert(ctx context.Context, a *models.JobAlert) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteAlert(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.JobAlert{}).Error
}
