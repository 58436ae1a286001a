package service

import (
	"context"
	"log/slog"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/pkg/apperr"
)

// Actor is the authenticated caller as seen by the session validator.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// JobSearcher is the full-text index behind job search. A nil JobSearcher
// means search runs against the database.
type JobSearcher interface {
	IndexJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	SearchJobs(ctx context.Context, query string, from, size int) (int64, []string, error)
}

// logFailed logs msg with the status err will be answered with: warn for
// client errors, error for everything else.
func logFailed(l *slog.Logger, msg string, err error, attrs ...any) {
	status := apperr.Status(err)
	attrs = append(attrs, "status", status, "error", err)
	if status >= 500 {
		l.Error(msg, attrs...)
		return
	}
	l.Warn(msg, attrs...)
}
