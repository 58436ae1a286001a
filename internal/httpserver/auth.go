package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/pkg/logging"
	authmw "github.com/Skotchmaster/job_board/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	user, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return Created(c, "registration successful", user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}

	pair, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}
	return OK(c, "login successful", pair)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	pair, err := h.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return OK(c, "token refreshed", pair)
}

// Logout always succeeds for the client; a malformed body is treated as an
// empty token.
func (h *AuthHTTP) Logout(c echo.Context) error {
	var req transport.RefreshRequest
	_ = c.Bind(&req)

	if err := h.Svc.LogOut(c.Request().Context(), req.RefreshToken); err != nil {
		return err
	}
	return OK(c, "logged out", nil)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, err := h.Svc.Me(c.Request().Context(), authmw.UserID(c))
	if err != nil {
		return err
	}
	return OK(c, "", user)
}

func (h *AuthHTTP) UpdateMe(c echo.Context) error {
	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	user, err := h.Svc.UpdateProfile(c.Request().Context(), authmw.UserID(c), req)
	if err != nil {
		return err
	}
	return OK(c, "profile updated", user)
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), authmw.UserID(c), req); err != nil {
		return err
	}
	return OK(c, "password changed, please log in again", nil)
}
