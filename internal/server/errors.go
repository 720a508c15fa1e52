package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
	"github.com/jonathan/career-copilot/internal/extraction"
	"github.com/jonathan/career-copilot/internal/session"
)

// ErrNoAnalysis indicates the session has no completed analysis to serve.
type ErrNoAnalysis struct{}

func (e *ErrNoAnalysis) Error() string {
	return "no analysis available: upload a resume first"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	var (
		noAnalysis  *ErrNoAnalysis
		validation  *ErrValidation
		unavailable *analysis.PipelineUnavailableError
		genFailure  *assets.GenerationFailure
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &noAnalysis):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, extraction.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, extraction.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &genFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns a safe, human-readable message for an error. Internal
// details never reach the response body.
func userMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest, http.StatusNotFound,
		http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return err.Error()
	case http.StatusServiceUnavailable:
		return "the analysis service is temporarily unavailable, please try again"
	case http.StatusBadGateway:
		return "generation failed, please try again"
	default:
		return "something went wrong, please try again"
	}
}
