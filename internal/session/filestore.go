package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore keeps one JSON file per session under a data directory. Writes
// go through a temp file and rename so a crash never leaves a torn session
// on disk.
type FileStore struct {
	dir string
	ttl time.Duration

	// locks entries live for the store's lifetime. Removing one while a
	// goroutine still holds the mutex pointer would let a second caller
	// mint a fresh mutex for the same ID and interleave with the holder.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// sweepInterval bounds how often expired session files are garbage
// collected. The sweep runs lazily on store traffic.
const sweepInterval = 10 * time.Minute

// NewFileStore creates the sessions directory if needed.
func NewFileStore(dataDir string, ttl time.Duration) (*FileStore, error) {
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{
		dir:   dir,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (st *FileStore) lockFor(id string) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	l, ok := st.locks[id]
	if !ok {
		l = &sync.Mutex{}
		st.locks[id] = l
	}
	return l
}

func (st *FileStore) path(id string) string {
	return filepath.Join(st.dir, id+".json")
}

// Create mints and persists a new session.
func (st *FileStore) Create(ctx context.Context) (*Session, error) {
	st.maybeSweep()
	s := newSession(st.ttl)
	if err := st.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a session. Expired sessions are deleted and reported as
// ErrNotFound.
func (st *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	lock := st.lockFor(id)
	lock.Lock()
	defer lock.Unlock()
	return st.read(id)
}

// Update loads the session, applies the mutation, and persists the result,
// all under the session's lock.
func (st *FileStore) Update(ctx context.Context, id string, apply func(*State) error) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	lock := st.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := st.read(id)
	if err != nil {
		return nil, err
	}
	if err := apply(&s.State); err != nil {
		return nil, err
	}
	if err := st.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the session file. Deleting a missing session is not an
// error.
func (st *FileStore) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	lock := st.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := os.Remove(st.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (st *FileStore) Close() error { return nil }

func (st *FileStore) read(id string) (*Session, error) {
	data, err := os.ReadFile(st.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Expired(time.Now().UTC()) {
		_ = os.Remove(st.path(id))
		return nil, ErrNotFound
	}
	return &s, nil
}

func (st *FileStore) write(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	tmp, err := os.CreateTemp(st.dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	if err := os.Rename(tmp.Name(), st.path(s.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	return nil
}

// maybeSweep deletes expired session files, at most once per sweepInterval.
func (st *FileStore) maybeSweep() {
	st.sweepMu.Lock()
	if time.Since(st.lastSweep) < sweepInterval {
		st.sweepMu.Unlock()
		return
	}
	st.lastSweep = time.Now()
	st.sweepMu.Unlock()

	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if validateID(id) != nil {
			continue
		}
		lock := st.lockFor(id)
		lock.Lock()
		// read deletes the file itself when the session is expired.
		_, _ = st.read(id)
		lock.Unlock()
	}
}

// validateID rejects anything that is not a UUID before it can reach a
// filesystem path.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}
