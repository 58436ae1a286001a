package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
)

type JobAlertHTTP struct {
	Svc *service.JobAlertService
}

func (h *JobAlertHTTP) List(c echo.Context) error {
	alerts, err := h.Svc.List(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return OK(c, "", alerts)
}

func (h *JobAlertHTTP) Create(c echo.Context) error {
	var req transport.JobAlertRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	alert, err := h.Svc.Create(c.Request().Context(), actor(c), req)
	if err != nil {
		return err
	}
	return Created(c, "job alert created", alert)
}

func (h *JobAlertHTTP) Update(c echo.Context) error {
	var req transport.PatchJobAlertRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	alert, err := h.Svc.Update(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return OK(c, "job alert updated", alert)
}

func (h *JobAlertHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return OK(c, "job alert deleted", nil)
}
