package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetKindAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
		code   string
	}{
		{"validation", NewValidationError("validation error", nil), KindValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"duplicate", NewDuplicateError("sku already exists"), KindDuplicate, http.StatusConflict, "CONFLICT"},
		{"authentication", NewAuthenticationError("invalid email or password"), KindAuthentication, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", NewNotFound("product"), KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"storage", NewStorageError(errors.New("disk full")), KindStorage, http.StatusInternalServerError, "STORAGE_ERROR"},
		{"internal", NewInternalError(errors.New("boom")), KindInternal, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	err := NewValidationError("validation error", map[string][]string{
		"price": {"price must be positive"},
		"sku":   {"sku is required"},
	})

	de := ToDomainError(err)
	assert.Equal(t, []string{"price must be positive"}, de.Details["price"])
	assert.Equal(t, []string{"sku is required"}, de.Details["sku"])
	assert.True(t, de.Public())
}

func TestToDomainErrorWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	de := ToDomainError(fmt.Errorf("query: %w", cause))

	assert.Equal(t, KindInternal, de.Kind)
	assert.Equal(t, "internal server error", de.Message)
	assert.False(t, de.Public())
	assert.ErrorIs(t, de, cause)
}

func TestToDomainErrorUnwrapsWrappedDomainError(t *testing.T) {
	err := fmt.Errorf("create product: %w", NewNotFound("product"))

	de := ToDomainError(err)
	assert.Equal(t, KindNotFound, de.Kind)
	assert.Equal(t, "product not found", de.Message)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.False(t, IsKind(nil, KindInternal))
}
