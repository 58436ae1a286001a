package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/job_board/internal/models"
)

func (r *GormRepo) CreateRefresh(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) FindRefreshByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error; err != nil {
		return nil, notFound(err, "refresh token")
	}
	return &token, nil
}

// RevokeRefreshIfActive flips revoked only when the row is still active and
// reports whether this call did it. Two callers racing on the same row cannot
// both get true.
func (r *GormRepo) RevokeRefreshIfActive(ctx context.Context, id string, now time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Updates(map[string]any{"revoked": true, "revoked_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) RevokeAllForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]any{"revoked": true, "revoked_at": now})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CountActiveInFamily(ctx context.Context, familyID string, now time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("family_id = ? AND revoked = ? AND expires_at > ?", familyID, false, now).
		Count(&count).Error
	return count, err
}
