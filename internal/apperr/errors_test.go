package apperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("plan has no datasets")

	assert.Equal(t, "plan has no datasets", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("yaml: line 3: did not find expected key")
	err := apperr.NewValidationWrap("parse plan YAML", inner)

	assert.Equal(t, "parse plan YAML: yaml: line 3: did not find expected key", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestIsValidation(t *testing.T) {
	original := apperr.NewValidation("roster is empty")
	doubleWrapped := fmt.Errorf("load plan: %w", fmt.Errorf("roster: %w", original))

	assert.True(t, apperr.IsValidation(doubleWrapped))

	var ve *apperr.ValidationError
	require.True(t, errors.As(doubleWrapped, &ve))
	assert.Equal(t, "roster is empty", ve.Message)

	plain := fmt.Errorf("read label file: %w", errors.New("permission denied"))
	assert.False(t, apperr.IsValidation(plain))
	assert.False(t, apperr.IsValidation(nil))
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("evaluate: %w", apperr.NewValidation("no roster configured")),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "no roster configured", "title": "validation error"},
		},
		{
			name:       "validation with detail",
			err:        apperr.NewValidationWrap("invalid request body", errors.New("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "invalid request body", "title": "validation error", "detail": "unexpected EOF"},
		},
		{
			name:       "http error",
			err:        echo.NewHTTPError(http.StatusNotFound, "route not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]string{"error": "route not found"},
		},
		{
			name:       "unhandled",
			err:        errors.New("label store down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
