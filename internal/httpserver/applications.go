package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
)

type ApplicationHTTP struct {
	Svc *service.ApplicationService
}

func (h *ApplicationHTTP) Apply(c echo.Context) error {
	var req transport.ApplyRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	app, err := h.Svc.Apply(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return Created(c, "application submitted", app)
}

func (h *ApplicationHTTP) ListMine(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.ListMine(c.Request().Context(), actor(c), c.QueryParam("status"), page, size)
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *ApplicationHTTP) ListForJob(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.ListForJob(c.Request().Context(), actor(c), c.Param("id"), c.QueryParam("status"), page, size)
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *ApplicationHTTP) UpdateStatus(c echo.Context) error {
	var req transport.ApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	app, err := h.Svc.UpdateStatus(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return OK(c, "application status updated", app)
}

func (h *ApplicationHTTP) Withdraw(c echo.Context) error {
	app, err := h.Svc.Withdraw(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return OK(c, "application withdrawn", app)
}
