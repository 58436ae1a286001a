// Package authmw validates bearer access tokens and gates routes by role.
package authmw

import (
	"slices"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "user"
)

// NewSessionValidator reads "Authorization: Bearer <token>", verifies it and
// stores the subject and role in the echo context. It never lets an
// unauthenticated request through. now may be nil.
func NewSessionValidator(secret []byte, now func() time.Time) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  CtxClaims,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			claims, err := tokens.ParseAccess(auth, secret, now)
			if err != nil {
				return nil, err
			}
			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if e := apperr.As(err); e != nil {
				return e
			}
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return apperr.ErrTokenMissing
			}
			return apperr.Wrap(apperr.ErrTokenMalformed, err)
		},
	})
}

// RequireRole must run after NewSessionValidator.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			if role == "" {
				return apperr.ErrTokenInvalid
			}
			if !slices.Contains(roles, role) {
				return apperr.ErrForbidden
			}
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserID).(string)
	return id
}

func Role(c echo.Context) string {
	role, _ := c.Get(CtxRole).(string)
	return role
}
