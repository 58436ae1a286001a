package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
)

type JobHTTP struct {
	Svc *service.JobService
}

func listQuery(c echo.Context) transport.JobListQuery {
	page, size := pageParams(c)
	return transport.JobListQuery{
		Q:         c.QueryParam("q"),
		Location:  c.QueryParam("location"),
		Type:      c.QueryParam("type"),
		Remote:    c.QueryParam("remote"),
		CompanyID: c.QueryParam("companyId"),
		Status:    c.QueryParam("status"),
		Page:      page,
		Size:      size,
	}
}

func (h *JobHTTP) List(c echo.Context) error {
	result, err := h.Svc.List(c.Request().Context(), listQuery(c))
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *JobHTTP) Search(c echo.Context) error {
	result, err := h.Svc.SearchJobs(c.Request().Context(), listQuery(c))
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *JobHTTP) Get(c echo.Context) error {
	job, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return OK(c, "", job)
}

func (h *JobHTTP) Create(c echo.Context) error {
	var req transport.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	job, err := h.Svc.Create(c.Request().Context(), actor(c), req)
	if err != nil {
		return err
	}
	return Created(c, "job created", job)
}

func (h *JobHTTP) Update(c echo.Context) error {
	var req transport.PatchJobRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	job, err := h.Svc.Update(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return OK(c, "job updated", job)
}

func (h *JobHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return OK(c, "job deleted", nil)
}
