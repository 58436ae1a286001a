package repo

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
)

func (r *GormRepo) CreateNotifications(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&ns).Error
}

func (r *GormRepo) ListNotifications(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]models.Notification, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ns []models.Notification
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ns).Error; err != nil {
		return nil, 0, err
	}
	return ns, total, nil
}

func (r *GormRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead only touches rows owned by userID, so a foreign id
// looks the same as a missing one.
func (r *GormRepo) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gormNotFound, "notification")
	}
	return nil
}

func (r *GormRepo) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
