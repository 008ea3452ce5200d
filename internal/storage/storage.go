// Package storage defines the ledger persistence contract and selects a
// backend from configuration.
//
// Every backend stores one Account document per username and implements
// Update as an optimistic read-modify-write: the write succeeds only if the
// stored Version is unchanged since the read, and conflicting writers retry
// up to MaxUpdateAttempts times before giving up with ErrLedgerBusy.
package storage

import (
	"context"

	"papertrade/internal/models"
)

// MaxUpdateAttempts bounds optimistic retries in Update.
const MaxUpdateAttempts = 5

// UpdateFunc mutates a private copy of the account. Returning an error
// aborts the update and nothing is written.
type UpdateFunc = func(acct *models.Account) error

// LedgerStore persists accounts keyed by username.
//
// Create fails with errors.ErrDuplicateUsername if the username is taken.
// Get and Update fail with errors.ErrUserNotFound for unknown users.
// Update returns fn's error unchanged, ErrLedgerBusy after exhausting
// retries, and a wrapped backend error on I/O failure.
type LedgerStore interface {
	Name() string
	Create(ctx context.Context, acct *models.Account) error
	Get(ctx context.Context, username string) (*models.Account, error)
	Update(ctx context.Context, username string, fn UpdateFunc) (*models.Account, error)
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
