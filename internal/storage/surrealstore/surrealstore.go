// Package surrealstore persists ledgers in a SurrealDB table, one record
// per username. The account is kept as a JSON string next to a version
// counter so writes can be made conditional on the version they read.
package surrealstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
	"papertrade/internal/models"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const (
	table       = "ledger"
	maxAttempts = 5
)

// Options configures the SurrealDB connection.
type Options struct {
	Addr      string
	User      string
	Pass      string
	Namespace string
	Database  string
}

type record struct {
	Username string `json:"username"`
	Document string `json:"document"`
	Version  int64  `json:"version"`
}

// Store is a LedgerStore backed by SurrealDB.
type Store struct {
	db  *surrealdb.DB
	now func() time.Time
}

// Open connects, signs in, selects the namespace and database, and makes
// sure the ledger table exists.
func Open(ctx context.Context, opts Options) (*Store, error) {
	db, err := surrealdb.New(opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": opts.User,
		"pass": opts.Pass,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, opts.Namespace, opts.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	s, err := NewWithDB(ctx, db)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}

	logger.Named("storage.surrealdb").Infow("connected",
		"address", opts.Addr, "namespace", opts.Namespace, "database", opts.Database)
	return s, nil
}

// NewWithDB wraps a connection that already has a namespace and database selected.
func NewWithDB(ctx context.Context, db *surrealdb.DB) (*Store, error) {
	// SurrealDB v3 errors on querying tables that were never defined.
	sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
	if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
		return nil, fmt.Errorf("failed to define table %s: %w", table, err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Name() string { return "surrealdb" }

func rid(username string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(table, username)
}

func (s *Store) Create(ctx context.Context, acct *models.Account) error {
	existing, err := s.selectRecord(ctx, acct.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.ErrDuplicateUsername
	}

	stored := acct.Clone()
	stored.Normalize()
	stored.Version = 1
	doc, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("surrealstore: encode account: %w", err)
	}

	vars := map[string]any{
		"rid":    rid(acct.Username),
		"record": record{Username: acct.Username, Document: string(doc), Version: 1},
	}
	if _, err := surrealdb.Query[[]record](ctx, s.db, "CREATE $rid CONTENT $record", vars); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return apperrors.ErrDuplicateUsername
		}
		return fmt.Errorf("surrealstore: create ledger: %w", err)
	}
	acct.Version = 1
	return nil
}

func (s *Store) Get(ctx context.Context, username string) (*models.Account, error) {
	rec, err := s.selectRecord(ctx, username)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return decode(username, rec)
}

// Update writes with UPDATE ... WHERE version = $version; an empty result
// means another writer got there first and the cycle is retried.
func (s *Store) Update(ctx context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	log := logger.Named("storage.surrealdb")
	sql := "UPDATE $rid SET document = $document, version = $next WHERE version = $version"

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rec, err := s.selectRecord(ctx, username)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, apperrors.ErrUserNotFound
		}
		acct, err := decode(username, rec)
		if err != nil {
			return nil, err
		}

		if err := fn(acct); err != nil {
			return nil, err
		}
		acct.Username = username
		acct.Version = rec.Version + 1
		acct.UpdatedAt = s.now()
		doc, err := json.Marshal(acct)
		if err != nil {
			return nil, fmt.Errorf("surrealstore: encode account: %w", err)
		}

		vars := map[string]any{
			"rid":      rid(username),
			"document": string(doc),
			"next":     rec.Version + 1,
			"version":  rec.Version,
		}
		results, err := surrealdb.Query[[]record](ctx, s.db, sql, vars)
		if err != nil {
			return nil, fmt.Errorf("surrealstore: update ledger: %w", err)
		}
		if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
			return acct, nil
		}
		log.Debugw("version conflict, retrying", "username", username, "attempt", attempt)
	}
	return nil, apperrors.ErrLedgerBusy
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	results, err := surrealdb.Query[[]record](ctx, s.db, "SELECT username FROM "+table, nil)
	if err != nil {
		return nil, fmt.Errorf("surrealstore: list users: %w", err)
	}

	var names []string
	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			names = append(names, r.Username)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := surrealdb.Query[any](ctx, s.db, "RETURN true", nil)
	return err
}

func (s *Store) Close() error {
	s.db.Close(context.Background())
	return nil
}

func (s *Store) selectRecord(ctx context.Context, username string) (*record, error) {
	rec, err := surrealdb.Select[record](ctx, s.db, rid(username))
	if err != nil {
		return nil, fmt.Errorf("surrealstore: select ledger: %w", err)
	}
	return rec, nil
}

func decode(username string, rec *record) (*models.Account, error) {
	var acct models.Account
	if err := json.Unmarshal([]byte(rec.Document), &acct); err != nil {
		return nil, fmt.Errorf("surrealstore: decode ledger %s: %w", username, err)
	}
	acct.Username = username
	acct.Version = rec.Version
	acct.Normalize()
	return &acct, nil
}
