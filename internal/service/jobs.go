package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/internal/util"
	"github.com/Skotchmaster/job_board/internal/validation"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

type JobService struct {
	Repo   *repo.GormRepo
	Search JobSearcher
	Events events.Publisher
}

func filterFromQuery(q transport.JobListQuery) repo.JobFilter {
	f := repo.JobFilter{
		Query:          strings.TrimSpace(q.Q),
		Location:       strings.TrimSpace(q.Location),
		EmploymentType: q.Type,
		CompanyID:      q.CompanyID,
		Status:         q.Status,
	}
	switch q.Remote {
	case "true":
		v := true
		f.Remote = &v
	case "false":
		v := false
		f.Remote = &v
	}
	switch f.Status {
	case "":
		f.Status = models.JobOpen
	case "all":
		f.Status = ""
	}
	return f
}

// List shows open jobs unless the query asks for another status.
func (s *JobService) List(ctx context.Context, q transport.JobListQuery) (util.Page[models.Job], error) {
	if err := validation.Struct(q); err != nil {
		return util.Page[models.Job]{}, err
	}
	offset, limit := util.Calculate(q.Page, q.Size)
	items, total, err := s.Repo.ListJobs(ctx, filterFromQuery(q), offset, limit)
	if err != nil {
		return util.Page[models.Job]{}, err
	}
	return util.NewPage(items, q.Page, offset, limit, total), nil
}

// SearchJobs uses the full-text index when one is configured and falls back
// to the database filter when it is not or when the index fails.
func (s *JobService) SearchJobs(ctx context.Context, q transport.JobListQuery) (util.Page[models.Job], error) {
	l := logging.FromContext(ctx).With("svc", "job.search")

	query := strings.TrimSpace(q.Q)
	if s.Search == nil || query == "" {
		return s.List(ctx, q)
	}
	if err := validation.Struct(q); err != nil {
		return util.Page[models.Job]{}, err
	}

	offset, limit := util.Calculate(q.Page, q.Size)
	total, ids, err := s.Search.SearchJobs(ctx, query, offset, limit)
	if err != nil {
		l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
		return s.List(ctx, q)
	}

	items, err := s.Repo.GetJobsByIDs(ctx, ids)
	if err != nil {
		return util.Page[models.Job]{}, err
	}
	return util.NewPage(items, q.Page, offset, limit, total), nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.Repo.GetJob(ctx, id)
}

func checkSalary(lo, hi int64) error {
	if hi > 0 && lo > hi {
		return apperr.Invalid("salaryMin", "must not exceed salaryMax")
	}
	return nil
}

func canManageJob(actor Actor, job *models.Job) bool {
	if actor.IsAdmin() || job.PostedBy == actor.UserID {
		return true
	}
	return job.Company != nil && job.Company.OwnerID == actor.UserID
}

func (s *JobService) Create(ctx context.Context, actor Actor, in transport.CreateJobRequest) (*models.Job, error) {
	l := logging.FromContext(ctx).With("svc", "job.create", "user_id", actor.UserID)

	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := checkSalary(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	company, err := s.Repo.GetCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.UserID && !actor.IsAdmin() {
		l.Warn("job_create_failed", "status", 403, "reason", "not the company owner", "company_id", company.ID)
		return nil, apperr.Forbidden("you do not manage this company")
	}

	job := &models.Job{
		CompanyID:      company.ID,
		PostedBy:       actor.UserID,
		Title:          in.Title,
		Description:    in.Description,
		Location:       strings.TrimSpace(in.Location),
		EmploymentType: in.EmploymentType,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
		Remote:         in.Remote,
		Status:         models.JobOpen,
	}
	if err := s.Repo.CreateJob(ctx, job); err != nil {
		logFailed(l, "job_create_failed", err)
		return nil, err
	}
	job.Company = company

	s.index(ctx, job)
	events.Emit(ctx, s.Events, events.TopicJobs, job.ID, events.New(events.JobCreated, map[string]any{
		"jobId":     job.ID,
		"companyId": job.CompanyID,
		"title":     job.Title,
	}))
	if n, err := s.notifyAlerts(ctx, job); err != nil {
		l.Error("job_alert_match_failed", "job_id", job.ID, "error", err)
	} else if n > 0 {
		l.Info("job_alert_notified", "job_id", job.ID, "notifications", n)
	}

	l.Info("job_create_success", "job_id", job.ID)
	return job, nil
}

func (s *JobService) manageable(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageJob(actor, job) {
		return nil, apperr.Forbidden("you do not manage this job")
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, actor Actor, id string, in transport.PatchJobRequest) (*models.Job, error) {
	l := logging.FromContext(ctx).With("svc", "job.update", "job_id", id)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	job, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Location != nil {
		job.Location = strings.TrimSpace(*in.Location)
	}
	if in.EmploymentType != nil {
		job.EmploymentType = *in.EmploymentType
	}
	if in.SalaryMin != nil {
		job.SalaryMin = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		job.SalaryMax = *in.SalaryMax
	}
	if in.Remote != nil {
		job.Remote = *in.Remote
	}
	if in.Status != nil {
		job.Status = *in.Status
	}
	if err := checkSalary(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveJob(ctx, job); err != nil {
		logFailed(l, "job_update_failed", err)
		return nil, err
	}

	s.index(ctx, job)
	events.Emit(ctx, s.Events, events.TopicJobs, job.ID, events.New(events.JobUpdated, map[string]any{
		"jobId":  job.ID,
		"status": job.Status,
	}))
	l.Info("job_update_success")
	return job, nil
}

// Delete removes the job with its applications and saved entries.
func (s *JobService) Delete(ctx context.Context, actor Actor, id string) error {
	l := logging.FromContext(ctx).With("svc", "job.delete", "job_id", id)

	if _, err := s.manageable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteJob(ctx, id); err != nil {
		logFailed(l, "job_delete_failed", err)
		return err
	}

	if s.Search != nil {
		if err := s.Search.DeleteJob(ctx, id); err != nil {
			l.Warn("search_unindex_failed", "error", err)
		}
	}
	events.Emit(ctx, s.Events, events.TopicJobs, id, events.New(events.JobDeleted, map[string]any{"jobId": id}))
	l.Info("job_delete_success")
	return nil
}

func (s *JobService) index(ctx context.Context, job *models.Job) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexJob(ctx, job); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "job_id", job.ID, "error", err)
	}
}

// notifyAlerts creates one notification per active alert matching job.
// The poster's own alerts are skipped.
func (s *JobService) notifyAlerts(ctx context.Context, job *models.Job) (int, error) {
	alerts, err := s.Repo.ListActiveAlerts(ctx, job.PostedBy)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	var ns []models.Notification
	for i := range alerts {
		a := &alerts[i]
		if seen[a.UserID] || !MatchesAlert(a, job) {
			continue
		}
		seen[a.UserID] = true
		ns = append(ns, models.Notification{
			UserID:  a.UserID,
			Type:    models.NotifyJobAlert,
			Title:   "New job matching your alert",
			Message: fmt.Sprintf("%s matches your alert %q", job.Title, a.Keywords),
			Link:    "/jobs/" + job.ID,
		})
	}
	if err := s.Repo.CreateNotifications(ctx, ns); err != nil {
		return 0, err
	}
	return len(ns), nil
}

// MatchesAlert reports whether job satisfies every criterion of a. Each
// keyword must appear in the title or description.
func MatchesAlert(a *models.JobAlert, job *models.Job) bool {
	if !a.Active || job.Status != models.JobOpen {
		return false
	}
	if a.RemoteOnly && !job.Remote {
		return false
	}
	if a.EmploymentType != "" && a.EmploymentType != job.EmploymentType {
		return false
	}
	if a.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(strings.TrimSpace(a.Location))) {
		return false
	}

	text := strings.ToLower(job.Title + " " + job.Description)
	terms := strings.FieldsFunc(strings.ToLower(a.Keywords), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
