package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"joblocator/internal/domain"
	"joblocator/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty text", domain.ErrEmptyText, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped empty text", fmt.Errorf("extract: %w", domain.ErrEmptyText), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid request", domain.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing api key", fmt.Errorf("openai: %w", domain.ErrMissingAPIKey), http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"unknown provider", domain.ErrUnknownProvider, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"backend not configured", domain.ErrBackendNotConfigured, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
