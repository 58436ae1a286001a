package repo

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
)

func (r *GormRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	return duplicate(r.DB.WithContext(ctx).Create(a).Error, "already applied to this job")
}

func (r *GormRepo) HasApplied(ctx context.Context, jobID, applicantID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.DB.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Where("id = ?", id).
		First(&app).Error; err != nil {
		return nil, notFound(err, "application")
	}
	return &app, nil
}

func (r *GormRepo) ListApplicationsByApplicant(ctx context.Context, applicantID, status string, offset, limit int) ([]models.Application, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Application{}).Where("applicant_id = ?", applicantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []models.Application
	if err := query.Preload("Job").Preload("Job.Company").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *GormRepo) ListApplicationsByJob(ctx context.Context, jobID, status string, offset, limit int) ([]models.Application, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", jobID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []models.Application
	if err := query.Preload("Applicant").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *GormRepo) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gormNotFound, "application")
	}
	return nil
}
