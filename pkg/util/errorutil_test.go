package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassThrough(t *testing.T) {
	original := NewConflict("Email already in use")

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainError_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewForbidden("Account is deactivated."))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
}

func TestToDomainError_StoreMiss(t *testing.T) {
	mapped := ToDomainError(sql.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainError_Unexpected(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "SERVER_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.ErrorContains(t, mapped, "boom")
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}
