package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) List(c echo.Context) error {
	page, size := pageParams(c)
	unread := c.QueryParam("unread") == "true"
	result, err := h.Svc.List(c.Request().Context(), actor(c), unread, page, size)
	if err != nil {
		return err
	}
	return OK(c, "", result)
}

func (h *NotificationHTTP) UnreadCount(c echo.Context) error {
	n, err := h.Svc.UnreadCount(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return OK(c, "", transport.UnreadCount{Unread: n})
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	if err := h.Svc.MarkRead(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return OK(c, "notification marked as read", nil)
}

func (h *NotificationHTTP) MarkAllRead(c echo.Context) error {
	n, err := h.Svc.MarkAllRead(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return OK(c, "all notifications marked as read", map[string]int64{"updated": n})
}
