package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("name", "Ana", "email", "a@b.c"))

	err := Required("name", "", "email", "a@b.c", "password", "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name", "password"}, verr.Fields)
	assert.Equal(t, "name, password are required", verr.Error())

	assert.EqualError(t, Required("title", ""), "title is required")
}

func TestMaxLength(t *testing.T) {
	assert.NoError(t, MaxLength("content", strings.Repeat("a", 10), 10))
	assert.ErrorIs(t, MaxLength("content", strings.Repeat("a", 11), 10), domain.ErrValidation)
	// counted in characters, not bytes
	assert.NoError(t, MaxLength("content", strings.Repeat("á", 10), 10))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("email", "demo@example.com"))
	assert.ErrorIs(t, Email("email", "not-an-email"), domain.ErrValidation)
	assert.ErrorIs(t, Email("email", "Demo <demo@example.com>"), domain.ErrValidation)
}
