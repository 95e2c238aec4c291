// Package store provides the TokenStore backends: a JSON file for the usual
// single-user install and a Redis hash for shared-terminal deployments.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// sessionRecord is the persisted document. One record per install; the
// store assumes a single writer (one active process).
type sessionRecord struct {
	Token    string   `json:"token,omitempty"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	UserID   *int64   `json:"userId,omitempty"`
}

// FileStore keeps the session record in a single JSON file. Every mutation
// rewrites the whole document via a temp file and rename, so Clear (and any
// partial update) is atomic from the caller's point of view.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (sessionRecord, error) {
	var rec sessionRecord
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, nil
		}
		return rec, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return sessionRecord{}, fmt.Errorf("parse session file: %w", err)
	}
	return rec, nil
}

func (s *FileStore) save(rec sessionRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) update(mutate func(*sessionRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	mutate(&rec)
	return s.save(rec)
}

func (s *FileStore) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	return rec.Token, err
}

func (s *FileStore) SetToken(_ context.Context, token string) error {
	return s.update(func(rec *sessionRecord) { rec.Token = token })
}

func (s *FileStore) Username(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	return rec.Username, err
}

func (s *FileStore) SetUsername(_ context.Context, username string) error {
	return s.update(func(rec *sessionRecord) { rec.Username = username })
}

func (s *FileStore) Roles(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	return rec.Roles, err
}

func (s *FileStore) SetRoles(_ context.Context, roles []string) error {
	return s.update(func(rec *sessionRecord) { rec.Roles = roles })
}

func (s *FileStore) UserID(_ context.Context) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil || rec.UserID == nil {
		return 0, false, err
	}
	return *rec.UserID, true, nil
}

func (s *FileStore) SetUserID(_ context.Context, id int64) error {
	return s.update(func(rec *sessionRecord) { rec.UserID = &id })
}

// Clear removes the whole record. A missing file is already clear.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}
