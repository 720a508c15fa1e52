// Package feedback stores user-submitted feedback as append-only JSONL.
package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Entry is one feedback submission.
type Entry struct {
	SessionID  string    `json:"session_id,omitempty"`
	TargetRole string    `json:"target_role,omitempty"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment" validate:"max=2000"`
	Email      string    `json:"email,omitempty" validate:"omitempty,email"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store appends entries to a JSONL file under an exclusive lock.
type Store struct {
	path     string
	validate *validator.Validate

	mu sync.Mutex
}

// NewStore creates the feedback directory if needed.
func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "feedback")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create feedback dir: %w", err)
	}
	return &Store{
		path:     filepath.Join(dir, "feedback.jsonl"),
		validate: validator.New(),
	}, nil
}

// Append validates and persists one entry. CreatedAt is stamped here.
func (s *Store) Append(entry Entry) error {
	entry.Comment = strings.TrimSpace(entry.Comment)
	if err := s.validate.Struct(entry); err != nil {
		return fmt.Errorf("invalid feedback: %w", err)
	}
	entry.CreatedAt = time.Now().UTC()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// All loads every stored entry, oldest first.
func (s *Store) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read feedback file: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("decode feedback line: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
