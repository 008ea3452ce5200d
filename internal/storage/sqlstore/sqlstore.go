// Package sqlstore persists ledgers as JSON documents in a relational table
// through GORM. It serves both the postgres and sqlite backends.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
	"papertrade/internal/models"

	"gorm.io/gorm"
)

// maxAttempts matches storage.MaxUpdateAttempts.
const maxAttempts = 5

// Store is a LedgerStore over the ledgers table.
type Store struct {
	db      *gorm.DB
	closeFn func() error
	now     func() time.Time
}

// New wraps an open GORM handle. closeFn releases the connection pool and
// may be nil when the caller owns the handle.
func New(db *gorm.DB, closeFn func() error) *Store {
	return &Store{
		db:      db,
		closeFn: closeFn,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Name reports the SQL dialect in use, "postgres" or "sqlite".
func (s *Store) Name() string {
	return s.db.Dialector.Name()
}

func (s *Store) Create(ctx context.Context, acct *models.Account) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.LedgerRecord{}).Where("username = ?", acct.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("sqlstore: check username: %w", err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateUsername
	}

	stored := acct.Clone()
	stored.Normalize()
	stored.Version = 1
	doc, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("sqlstore: encode account: %w", err)
	}

	rec := models.LedgerRecord{Username: acct.Username, Document: string(doc), Version: 1}
	if err := db.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateUsername
		}
		return fmt.Errorf("sqlstore: insert ledger: %w", err)
	}
	acct.Version = 1
	return nil
}

func (s *Store) Get(ctx context.Context, username string) (*models.Account, error) {
	rec, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	return decode(rec)
}

func (s *Store) Update(ctx context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	log := logger.Named("storage.sql")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rec, err := s.load(ctx, username)
		if err != nil {
			return nil, err
		}
		acct, err := decode(rec)
		if err != nil {
			return nil, err
		}

		if err := fn(acct); err != nil {
			return nil, err
		}

		now := s.now()
		acct.Username = username
		acct.Version = rec.Version + 1
		acct.UpdatedAt = now
		doc, err := json.Marshal(acct)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: encode account: %w", err)
		}

		res := s.db.WithContext(ctx).
			Model(&models.LedgerRecord{}).
			Where("username = ? AND version = ?", username, rec.Version).
			Updates(map[string]interface{}{
				"document":   string(doc),
				"version":    rec.Version + 1,
				"updated_at": now,
			})
		if res.Error != nil {
			return nil, fmt.Errorf("sqlstore: update ledger: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			return acct, nil
		}
		log.Debugw("version conflict, retrying", "username", username, "attempt", attempt)
	}
	return nil, apperrors.ErrLedgerBusy
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.LedgerRecord{}).Order("username").Pluck("username", &names).Error; err != nil {
		return nil, fmt.Errorf("sqlstore: list users: %w", err)
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func (s *Store) load(ctx context.Context, username string) (*models.LedgerRecord, error) {
	var rec models.LedgerRecord
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: load ledger: %w", err)
	}
	return &rec, nil
}

func decode(rec *models.LedgerRecord) (*models.Account, error) {
	var acct models.Account
	if err := json.Unmarshal([]byte(rec.Document), &acct); err != nil {
		return nil, fmt.Errorf("sqlstore: decode ledger %s: %w", rec.Username, err)
	}
	acct.Username = rec.Username
	acct.Version = rec.Version
	acct.Normalize()
	return &acct, nil
}
