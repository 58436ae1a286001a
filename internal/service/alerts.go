package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/internal/validation"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

type JobAlertService struct {
	Repo *repo.GormRepo
}

func (s *JobAlertService) List(ctx context.Context, actor Actor) ([]models.JobAlert, error) {
	alerts, err := s.Repo.ListAlerts(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []models.JobAlert{}
	}
	return alerts, nil
}

// Create stores an alert; it starts active unless the request says otherwise.
func (s *JobAlertService) Create(ctx context.Context, actor Actor, in transport.JobAlertRequest) (*models.JobAlert, error) {
	in.Keywords = strings.TrimSpace(in.Keywords)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	alert := &models.JobAlert{
		UserID:         actor.UserID,
		Keywords:       in.Keywords,
		Location:       strings.TrimSpace(in.Location),
		EmploymentType: in.EmploymentType,
		RemoteOnly:     in.RemoteOnly,
		Active:         in.Active == nil || *in.Active,
	}
	if err := s.Repo.CreateAlert(ctx, alert); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("job_alert_created", "user_id", actor.UserID, "alert_id", alert.ID)
	return alert, nil
}

func (s *JobAlertService) own(ctx context.Context, actor Actor, id string) (*models.JobAlert, error) {
	alert, err := s.Repo.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.UserID != actor.UserID {
		return nil, apperr.Forbidden("not your job alert")
	}
	return alert, nil
}

func (s *JobAlertService) Update(ctx context.Context, actor Actor, id string, in transport.PatchJobAlertRequest) (*models.JobAlert, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	alert, err := s.own(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Keywords != nil {
		alert.Keywords = strings.TrimSpace(*in.Keywords)
	}
	if in.Location != nil {
		alert.Location = strings.TrimSpace(*in.Location)
	}
	if in.EmploymentType != nil {
		alert.EmploymentType = *in.EmploymentType
	}
	if in.RemoteOnly != nil {
		alert.RemoteOnly = *in.RemoteOnly
	}
	if in.Active != nil {
		alert.Active = *in.Active
	}

	if err := s.Repo.SaveAlert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *JobAlertService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.own(ctx, actor, id); err != nil {
		return err
	}
	return s.Repo.DeleteAlert(ctx, id)
}
