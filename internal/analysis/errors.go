package analysis

import "fmt"

// PipelineUnavailableError means the understand stage could not produce even
// a default structure: the generation service was unreachable on every
// attempt. Callers should serve a previously cached result if one exists,
// or surface a retryable error to the end user.
type PipelineUnavailableError struct {
	Cause error
}

func (e *PipelineUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis pipeline unavailable: %v", e.Cause)
	}
	return "analysis pipeline unavailable"
}

func (e *PipelineUnavailableError) Unwrap() error {
	return e.Cause
}

// StageError reports a single stage failure during a pipeline run. It is
// recovered internally (retry, then default) and only surfaces in logs.
type StageError struct {
	Stage   string
	Attempt int
	Cause   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s attempt %d: %v", e.Stage, e.Attempt, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
