package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/internal/util"
	"github.com/Skotchmaster/job_board/internal/validation"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

// transitions lists the statuses an application may move to from each
// status. Accepted, rejected and withdrawn are terminal.
var transitions = map[string][]string{
	models.AppPending:   {models.AppReviewing, models.AppInterview, models.AppAccepted, models.AppRejected, models.AppWithdrawn},
	models.AppReviewing: {models.AppInterview, models.AppAccepted, models.AppRejected, models.AppWithdrawn},
	models.AppInterview: {models.AppAccepted, models.AppRejected, models.AppWithdrawn},
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

type ApplicationService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID string, in transport.ApplyRequest) (*models.Application, error) {
	l := logging.FromContext(ctx).With("svc", "application.apply", "user_id", actor.UserID, "job_id", jobID)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if actor.Role != models.RoleJobseeker {
		return nil, apperr.Forbidden("only job seekers can apply")
	}

	job, err := s.Repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobOpen {
		l.Warn("apply_failed", "status", 400, "reason", "job closed")
		return nil, apperr.Invalid("jobId", "job is not accepting applications")
	}

	applied, err := s.Repo.HasApplied(ctx, jobID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if applied {
		l.Warn("apply_failed", "status", 409, "reason", "already applied")
		return nil, apperr.Conflict("already applied to this job")
	}

	app := &models.Application{
		JobID:       jobID,
		ApplicantID: actor.UserID,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
		Status:      models.AppPending,
	}
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateApplication(ctx, app); err != nil {
			return err
		}
		return tx.CreateNotifications(ctx, []models.Notification{{
			UserID:  job.PostedBy,
			Type:    models.NotifyApplicationReceived,
			Title:   "New application",
			Message: fmt.Sprintf("You received a new application for %s", job.Title),
			Link:    "/jobs/" + job.ID + "/applications",
		}})
	})
	if err != nil {
		l.Warn("apply_failed", "error", err)
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicApplications, app.ID, events.New(events.ApplicationSubmitted, map[string]any{
		"applicationId": app.ID,
		"jobId":         jobID,
		"applicantId":   actor.UserID,
	}))
	l.Info("apply_success", "application_id", app.ID)
	app.Job = job
	return app, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor Actor, status string, page, size int) (util.Page[models.Application], error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListApplicationsByApplicant(ctx, actor.UserID, status, offset, limit)
	if err != nil {
		return util.Page[models.Application]{}, err
	}
	return util.NewPage(items, page, offset, limit, total), nil
}

// ListForJob is for the job's poster, the company owner or an admin.
func (s *ApplicationService) ListForJob(ctx context.Context, actor Actor, jobID, status string, page, size int) (util.Page[models.Application], error) {
	job, err := s.Repo.GetJob(ctx, jobID)
	if err != nil {
		return util.Page[models.Application]{}, err
	}
	if !canManageJob(actor, job) {
		return util.Page[models.Application]{}, apperr.Forbidden("you do not manage this job")
	}

	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListApplicationsByJob(ctx, jobID, status, offset, limit)
	if err != nil {
		return util.Page[models.Application]{}, err
	}
	return util.NewPage(items, page, offset, limit, total), nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, id string, in transport.ApplicationStatusRequest) (*models.Application, error) {
	l := logging.FromContext(ctx).With("svc", "application.update_status", "application_id", id)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Job == nil || !canManageJob(actor, app.Job) {
		return nil, apperr.Forbidden("you do not manage this job")
	}
	if !CanTransition(app.Status, in.Status) {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid transition", "from", app.Status, "to", in.Status)
		return nil, apperr.Invalid("status", fmt.Sprintf("cannot change status from %s to %s", app.Status, in.Status))
	}

	from := app.Status
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.UpdateApplicationStatus(ctx, app.ID, in.Status); err != nil {
			return err
		}
		return tx.CreateNotifications(ctx, []models.Notification{{
			UserID:  app.ApplicantID,
			Type:    models.NotifyApplicationStatus,
			Title:   "Application status updated",
			Message: fmt.Sprintf("Your application for %s is now %s", app.Job.Title, in.Status),
			Link:    "/applications/" + app.ID,
		}})
	})
	if err != nil {
		logFailed(l, "update_status_failed", err)
		return nil, err
	}
	app.Status = in.Status

	events.Emit(ctx, s.Events, events.TopicApplications, app.ID, events.New(events.ApplicationStatusChanged, map[string]any{
		"applicationId": app.ID,
		"from":          from,
		"to":            in.Status,
	}))
	l.Info("update_status_success", "from", from, "to", in.Status)
	return app, nil
}

// Withdraw lets the applicant pull a non-terminal application.
func (s *ApplicationService) Withdraw(ctx context.Context, actor Actor, id string) (*models.Application, error) {
	l := logging.FromContext(ctx).With("svc", "application.withdraw", "application_id", id)

	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != actor.UserID {
		return nil, apperr.Forbidden("not your application")
	}
	if !CanTransition(app.Status, models.AppWithdrawn) {
		return nil, apperr.Invalid("status", fmt.Sprintf("cannot withdraw an application that is %s", app.Status))
	}

	from := app.Status
	if err := s.Repo.UpdateApplicationStatus(ctx, app.ID, models.AppWithdrawn); err != nil {
		return nil, err
	}
	app.Status = models.AppWithdrawn

	events.Emit(ctx, s.Events, events.TopicApplications, app.ID, events.New(events.ApplicationStatusChanged, map[string]any{
		"applicationId": app.ID,
		"from":          from,
		"to":            models.AppWithdrawn,
	}))
	l.Info("withdraw_success")
	return app, nil
}
