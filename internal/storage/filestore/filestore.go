// Package filestore keeps every ledger in a single JSON document on local
// disk. Each write replaces the whole file through a temp file and rename,
// so readers never observe a partial document.
//
// The store serializes access within one process only; run a single API
// instance per data file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
)

// document is the on-disk layout: accounts keyed by username.
type document map[string]*models.Account

// Store is a LedgerStore backed by one JSON file.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New opens the data file at path, creating its directory if needed. A
// missing file is treated as an empty ledger; an unreadable one is an error.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("filestore: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create data dir: %w", err)
	}

	s := &Store{path: path, now: func() time.Time { return time.Now().UTC() }}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the backend in logs and health checks.
func (s *Store) Name() string { return "file" }

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Create(_ context.Context, acct *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := doc[acct.Username]; exists {
		return apperrors.ErrDuplicateUsername
	}

	stored := acct.Clone()
	stored.Normalize()
	stored.Version = 1
	doc[acct.Username] = stored
	if err := s.save(doc); err != nil {
		return err
	}
	acct.Version = stored.Version
	return nil
}

func (s *Store) Get(_ context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	acct, ok := doc[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return acct, nil
}

func (s *Store) Update(_ context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	current, ok := doc[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	work := current.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}

	work.Username = username
	work.Version = current.Version + 1
	work.UpdatedAt = s.now()
	doc[username] = work
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return work.Clone(), nil
}

func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ping checks that the data file can be read.
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load()
	return err
}

func (s *Store) Close() error { return nil }

func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return document{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w", s.path, err)
	}
	if doc == nil {
		doc = document{}
	}
	for name, acct := range doc {
		if acct == nil {
			delete(doc, name)
			continue
		}
		acct.Username = name
		acct.Normalize()
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", s.path, err)
	}
	return nil
}
