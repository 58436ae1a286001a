package service

import (
	"context"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/util"
)

type SavedJobService struct {
	Repo *repo.GormRepo
}

func (s *SavedJobService) List(ctx context.Context, actor Actor, page, size int) (util.Page[models.SavedJob], error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListSavedJobs(ctx, actor.UserID, offset, limit)
	if err != nil {
		return util.Page[models.SavedJob]{}, err
	}
	return util.NewPage(items, page, offset, limit, total), nil
}

// Save is idempotent.
func (s *SavedJobService) Save(ctx context.Context, actor Actor, jobID string) (*models.SavedJob, error) {
	job, err := s.Repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	saved, err := s.Repo.SaveJobForUser(ctx, actor.UserID, job.ID)
	if err != nil {
		return nil, err
	}
	saved.Job = job
	return saved, nil
}

func (s *SavedJobService) Remove(ctx context.Context, actor Actor, jobID string) error {
	return s.Repo.UnsaveJob(ctx, actor.UserID, jobID)
}
