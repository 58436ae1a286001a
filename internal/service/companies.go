package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/internal/util"
	"github.com/Skotchmaster/job_board/internal/validation"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

type CompanyService struct {
	Repo *repo.GormRepo
}

func (s *CompanyService) List(ctx context.Context, q string, page, size int) (util.Page[models.Company], error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListCompanies(ctx, q, offset, limit)
	if err != nil {
		return util.Page[models.Company]{}, err
	}
	return util.NewPage(items, page, offset, limit, total), nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.Repo.GetCompany(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, actor Actor, in transport.CreateCompanyRequest) (*models.Company, error) {
	l := logging.FromContext(ctx).With("svc", "company.create", "user_id", actor.UserID)

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if actor.Role != models.RoleEmployer && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only employers can create companies")
	}

	company := &models.Company{
		OwnerID:     actor.UserID,
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Location:    in.Location,
	}
	if err := s.Repo.CreateCompany(ctx, company); err != nil {
		logFailed(l, "company_create_failed", err)
		return nil, err
	}
	l.Info("company_create_success", "company_id", company.ID)
	return company, nil
}

func (s *CompanyService) owned(ctx context.Context, actor Actor, id string) (*models.Company, error) {
	company, err := s.Repo.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, apperr.Forbidden("you do not manage this company")
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, actor Actor, id string, in transport.PatchCompanyRequest) (*models.Company, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	company, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	if in.Location != nil {
		company.Location = *in.Location
	}

	if err := s.Repo.SaveCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete refuses while the company still has job postings.
func (s *CompanyService) Delete(ctx context.Context, actor Actor, id string) error {
	l := logging.FromContext(ctx).With("svc", "company.delete", "company_id", id)

	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	jobs, err := s.Repo.CountJobsForCompany(ctx, id)
	if err != nil {
		return err
	}
	if jobs > 0 {
		l.Warn("company_delete_failed", "status", 409, "reason", "company has jobs", "jobs", jobs)
		return apperr.Conflict("company still has job postings")
	}
	if err := s.Repo.DeleteCompany(ctx, id); err != nil {
		return err
	}
	l.Info("company_delete_success")
	return nil
}
