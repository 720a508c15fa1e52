// Package session persists per-visitor state between requests: the
// extracted resume text, the analysis result, and any generated assets.
// Results are cached so reloading a page never re-runs the pipeline.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
)

// CookieName is the HTTP cookie carrying the session ID.
const CookieName = "career_copilot_session"

// DefaultTTL is how long a session lives after creation.
const DefaultTTL = 4 * time.Hour

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// State is everything cached for one visitor. AnalysisInputs is the
// fingerprint of the resume text and role the Analysis was computed from.
type State struct {
	ResumeText      string            `json:"resume_text,omitempty"`
	ResumeFilename  string            `json:"resume_filename,omitempty"`
	TargetRole      string            `json:"target_role,omitempty"`
	Analysis        *analysis.Result  `json:"analysis,omitempty"`
	AnalysisInputs  string            `json:"analysis_inputs,omitempty"`
	CoverLetter     string            `json:"cover_letter,omitempty"`
	Questions       []assets.Question `json:"questions,omitempty"`
	RetrievalHandle string            `json:"retrieval_handle,omitempty"`
	Subject         string            `json:"subject,omitempty"`
}

// Session pairs an ID and expiry with the visitor state.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	State     State     `json:"state"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// newSession mints a session with a fresh random ID.
func newSession(ttl time.Duration) *Session {
	now := time.Now().UTC()
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store persists sessions. Update applies a mutation under the store's
// per-session lock so concurrent handlers never lose writes.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, apply func(*State) error) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
