package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

type ErrorItem struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Envelope is the body of every response.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      any         `json:"data,omitempty"`
	Errors    []ErrorItem `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

func OK(c echo.Context, message string, data any) error {
	return respond(c, http.StatusOK, message, data)
}

func Created(c echo.Context, message string, data any) error {
	return respond(c, http.StatusCreated, message, data)
}

func statusCode(status int) string {
	switch status {
	case http.StatusTooManyRequests:
		return apperr.ErrRateLimited.Code
	case http.StatusNotFound:
		return apperr.ErrNotFound.Code
	case http.StatusInternalServerError:
		return apperr.ErrInternal.Code
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// render maps err to a status code and error list. production hides the
// detail of unexpected errors.
func render(err error, production bool) (int, string, []ErrorItem) {
	if e := apperr.As(err); e != nil {
		// revoked and unknown refresh tokens look the same to the client
		if e.Code == apperr.ErrTokenRevoked.Code {
			e = apperr.ErrTokenInvalid
		}
		if e.Kind == apperr.KindInternal {
			return renderInternal(err, production)
		}
		status := e.Kind.Status()
		if len(e.Fields) == 0 {
			return status, e.Message, []ErrorItem{{Code: e.Code, Message: e.Message}}
		}
		items := make([]ErrorItem, 0, len(e.Fields))
		for _, f := range e.Fields {
			items = append(items, ErrorItem{Code: e.Code, Field: f.Field, Message: f.Message})
		}
		return status, e.Message, items
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, apperr.ErrNotFound.Message,
			[]ErrorItem{{Code: apperr.ErrNotFound.Code, Message: apperr.ErrNotFound.Message}}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		if he.Code >= http.StatusInternalServerError {
			return renderInternal(err, production)
		}
		return he.Code, msg, []ErrorItem{{Code: statusCode(he.Code), Message: msg}}
	}

	return renderInternal(err, production)
}

func renderInternal(err error, production bool) (int, string, []ErrorItem) {
	msg := apperr.ErrInternal.Message
	if !production && err != nil {
		msg = err.Error()
	}
	return http.StatusInternalServerError, apperr.ErrInternal.Message,
		[]ErrorItem{{Code: apperr.ErrInternal.Code, Message: msg}}
}

// ErrorHandler is the only place errors become HTTP responses.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, items := render(err, production)
		if status >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, Envelope{
			Success:   false,
			Message:   message,
			Errors:    items,
			Timestamp: now(),
		})
	}
}

// bindError turns an echo bind failure into a validation error.
func bindError(err error) error {
	return apperr.Wrap(apperr.Validation(apperr.FieldError{Field: "body", Message: "malformed request body"}), err)
}
