package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
	"github.com/jonathan/career-copilot/internal/extraction"
	"github.com/jonathan/career-copilot/internal/session"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "rating", Message: "out of range"}, http.StatusBadRequest},
		{"no analysis", &ErrNoAnalysis{}, http.StatusNotFound},
		{"session not found", session.ErrNotFound, http.StatusNotFound},
		{"wrapped session not found", fmt.Errorf("load: %w", session.ErrNotFound), http.StatusNotFound},
		{"unsupported format", extraction.ErrUnsupportedFormat, http.StatusBadRequest},
		{"too large", extraction.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{"empty document", extraction.ErrEmptyDocument, http.StatusUnprocessableEntity},
		{"pipeline unavailable", &analysis.PipelineUnavailableError{Cause: errors.New("down")}, http.StatusServiceUnavailable},
		{"generation failure", &assets.GenerationFailure{Asset: "cover letter", Cause: errors.New("x")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessageHidesInternals(t *testing.T) {
	msg := userMessage(errors.New("pq: connection refused on 10.0.0.3"))
	assert.NotContains(t, msg, "10.0.0.3")

	msg = userMessage(&analysis.PipelineUnavailableError{Cause: errors.New("groq: 500 with api key")})
	assert.NotContains(t, msg, "api key")
	assert.Contains(t, msg, "temporarily unavailable")
}

func TestUserMessageKeepsClientErrors(t *testing.T) {
	msg := userMessage(extraction.ErrUnsupportedFormat)
	assert.Equal(t, extraction.ErrUnsupportedFormat.Error(), msg)
}
