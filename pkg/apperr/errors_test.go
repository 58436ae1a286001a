package apperr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("rotate: %w", Wrap(ErrTokenRevoked, io.EOF))

	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.ErrorIs(t, err, io.EOF)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestValidation_CarriesFields(t *testing.T) {
	err := Validation(
		FieldError{Field: "email", Message: "must be a valid email"},
		FieldError{Field: "password", Message: "too short"},
	)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestAs(t *testing.T) {
	assert.Nil(t, As(errors.New("plain")))

	e := As(fmt.Errorf("outer: %w", NotFound("job")))
	require.NotNil(t, e)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, "job not found", e.Message)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrTokenRevoked, 401},
		{fmt.Errorf("rotate: %w", ErrTokenExpired), 401},
		{Invalid("password", "too long"), 400},
		{Conflict("dup"), 409},
		{ErrForbidden, 403},
		{NotFound("job"), 404},
		{ErrRateLimited, 429},
		{Wrap(ErrInternal, io.EOF), 500},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}
