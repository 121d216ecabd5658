package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "child not found"))

	got := FromError(wrapped)

	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "child not found", got.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	got := FromError(sql.ErrConnDone)

	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, sql.ErrConnDone)
}

func TestWithDetailsDoesNotMutateOriginal(t *testing.T) {
	details := []FieldError{{Field: "status", Message: "must be one of draft active complete cancelled"}}

	got := WithDetails(ErrValidation, details)

	assert.Len(t, got.Details, 1)
	assert.Empty(t, ErrValidation.Details)
	assert.True(t, Is(got, ErrValidation))
	assert.False(t, Is(got, ErrNotFound))
}
