// Package jsonfile implements store.Store on top of a single JSON document.
//
// The whole user set is serialized as one array and every mutation is a
// read-modify-write of the full document. That is deliberately simple for a
// registration-volume workload, but it makes concurrent writers a lost-update
// hazard, so all access is serialized behind one process-wide mutex and every
// overwrite goes through a temp file plus rename. A reader never observes a
// half-written document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linkmark/linkmark/internal/auth/domain"
	"github.com/linkmark/linkmark/internal/auth/store"
)

// Store owns the backing document exclusively. No other component reads or
// writes the file directly.
type Store struct {
	path string

	// mu serializes every load/save sequence. Holding it across the whole
	// read-modify-write is what closes the concurrent-registration race.
	mu sync.Mutex
}

var _ store.Store = (*Store)(nil)

// userRecord is the on-disk shape of a user.
type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// New returns a Store backed by the document at path. The file is created
// lazily; an absent document reads as an empty user set.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("jsonfile: create store directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Users returns the user repository.
func (s *Store) Users() store.Users { return &usersRepo{s: s} }

// Ping verifies the backing document parses. An absent file is healthy.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.loadAll()
	return err
}

// Close is a no-op; the file is only held open during individual operations.
func (s *Store) Close() error { return nil }

// loadAll reads and parses the full document. Callers must hold s.mu.
func (s *Store) loadAll() ([]userRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", store.ErrUnavailable, s.path, err)
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", store.ErrUnavailable, s.path, err)
	}
	return records, nil
}

// saveAll atomically overwrites the full document. Callers must hold s.mu.
// The write lands in a temp file in the same directory first and is renamed
// over the target, so a crash mid-write leaves the old document intact.
func (s *Store) saveAll(records []userRecord) error {
	if records == nil {
		records = []userRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode users: %w", store.ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", store.ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %w", store.ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %w", store.ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %w", store.ErrUnavailable, s.path, err)
	}
	return nil
}

func fromDomain(u domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomain(r userRecord) domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}
