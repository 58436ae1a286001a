// Package apperr is the error taxonomy shared by services, middleware and the
// HTTP error formatter. Services return these (possibly wrapped); only the
// formatter writes responses for them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
)

// Status is the HTTP status code for errors of kind k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Status returns the HTTP status code err will be rendered with when it
// carries an *Error, and 500 otherwise.
func Status(err error) int {
	if e := As(err); e != nil {
		return e.Kind.Status()
	}
	return http.StatusInternalServerError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s %s", f.Field, f.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code, so a derived error (extra fields, other message)
// still satisfies errors.Is against its sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation         = &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "validation failed"}
	ErrConflict           = &Error{Kind: KindConflict, Code: "CONFLICT", Message: "resource already exists"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	ErrTokenInvalid       = &Error{Kind: KindUnauthorized, Code: "TOKEN_INVALID", Message: "invalid token"}
	ErrTokenExpired       = &Error{Kind: KindUnauthorized, Code: "TOKEN_EXPIRED", Message: "token expired"}
	ErrTokenRevoked       = &Error{Kind: KindUnauthorized, Code: "TOKEN_REVOKED", Message: "token revoked"}
	ErrTokenMissing       = &Error{Kind: KindUnauthorized, Code: "TOKEN_MISSING", Message: "missing access token"}
	ErrTokenMalformed     = &Error{Kind: KindUnauthorized, Code: "TOKEN_MALFORMED", Message: "malformed access token"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "not enough rights"}
	ErrNotFound           = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "resource not found"}
	ErrRateLimited        = &Error{Kind: KindRateLimited, Code: "RATE_LIMITED", Message: "too many requests, try again later"}
	ErrInternal           = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "internal server error"}
)

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Code: ErrValidation.Code, Message: ErrValidation.Message, Fields: fields}
}

func Invalid(field, message string) *Error {
	return Validation(FieldError{Field: field, Message: message})
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: ErrConflict.Code, Message: message}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Code: ErrNotFound.Code, Message: what + " not found"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: ErrForbidden.Code, Message: message}
}

// Wrap attaches a cause to a sentinel without changing its code or message.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Fields: sentinel.Fields, Err: cause}
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
