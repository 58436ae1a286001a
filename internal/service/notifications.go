package service

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/util"
)

type NotificationService struct {
	Repo *repo.GormRepo
}

func (s *NotificationService) List(ctx context.Context, actor Actor, unreadOnly bool, page, size int) (util.Page[models.Notification], error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListNotifications(ctx, actor.UserID, unreadOnly, offset, limit)
	if err != nil {
		return util.Page[models.Notification]{}, err
	}
	return util.NewPage(items, page, offset, limit, total), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	return s.Repo.CountUnread(ctx, actor.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id string) error {
	return s.Repo.MarkNotificationRead(ctx, actor.UserID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	return s.Repo.MarkAllNotificationsRead(ctx, actor.UserID)
}
