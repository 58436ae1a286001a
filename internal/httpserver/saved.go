package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
)

type SavedJobHTTP struct {
	Svc *service.SavedJobService
}

func (h *SavedJobHTTP) List(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.List(c.Request().Context(), actor(c), page, size)
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *SavedJobHTTP) Save(c echo.Context) error {
	saved, err := h.Svc.Save(c.Request().Context(), actor(c), c.Param("jobId"))
	if err != nil {
		return err
	}
	return OK(c, "job saved", saved)
}

func (h *SavedJobHTTP) Remove(c echo.Context) error {
	if err := h.Svc.Remove(c.Request().Context(), actor(c), c.Param("jobId")); err != nil {
		return err
	}
	return OK(c, "job removed from saved", nil)
}
