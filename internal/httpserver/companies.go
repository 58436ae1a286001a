package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
)

type CompanyHTTP struct {
	Svc *service.CompanyService
}

func (h *CompanyHTTP) List(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.List(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *CompanyHTTP) Get(c echo.Context) error {
	company, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return OK(c, "", company)
}

func (h *CompanyHTTP) Create(c echo.Context) error {
	var req transport.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	company, err := h.Svc.Create(c.Request().Context(), actor(c), req)
	if err != nil {
		return err
	}
	return Created(c, "company created", company)
}

func (h *CompanyHTTP) Update(c echo.Context) error {
	var req transport.PatchCompanyRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	company, err := h.Svc.Update(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return OK(c, "company updated", company)
}

func (h *CompanyHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return OK(c, "company deleted", nil)
}
