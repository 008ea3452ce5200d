package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/ledger"
	"papertrade/internal/market"
	"papertrade/internal/models"
	"papertrade/internal/storage"
	"papertrade/internal/storage/filestore"
)

var fixedNow = time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *filestore.Store {
	t.Helper()
	s, err := filestore.New(filepath.Join(t.TempDir(), "trading_data.json"))
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}
	return s
}

func newTestLedger() *ledger.Ledger {
	return ledger.New(market.Default(), ledger.WithClock(func() time.Time { return fixedNow }))
}

func newTestUserService(store storage.LedgerStore) *userService {
	return &userService{store: store, initialBalance: decimal.RequireFromString("10000.00"), cost: bcrypt.MinCost}
}

func newTestTradingService(store storage.LedgerStore, n notifierFunc) *tradingService {
	svc := NewTradingService(store, newTestLedger(), n, 10*time.Second)
	return svc.(*tradingService)
}

// notifierFunc adapts a function to notify.Notifier. A nil func succeeds.
type notifierFunc func(ctx context.Context, username string, tx models.Transaction) error

func (f notifierFunc) TradeExecuted(ctx context.Context, username string, tx models.Transaction) error {
	if f == nil {
		return nil
	}
	return f(ctx, username, tx)
}

func (f notifierFunc) Close() error { return nil }

// recordingNotifier remembers every notification it receives.
type recordingNotifier struct {
	mu  sync.Mutex
	txs []models.Transaction
}

func (r *recordingNotifier) fn() notifierFunc {
	return func(_ context.Context, _ string, tx models.Transaction) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.txs = append(r.txs, tx)
		return nil
	}
}

// failingStore delegates reads but fails every write after running fn on a
// throwaway copy.
type failingStore struct {
	storage.LedgerStore
	err error
}

func (f *failingStore) Update(ctx context.Context, username string, fn storage.UpdateFunc) (*models.Account, error) {
	acct, err := f.LedgerStore.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := fn(acct.Clone()); err != nil {
		return nil, err
	}
	return nil, f.err
}

var errDiskFull = errors.New("write trading_data.json: no space left on device")

func seedAccount(t *testing.T, store storage.LedgerStore, username, balance string) {
	t.Helper()
	acct := models.NewAccount(username, "x", models.NewPortfolio(decimal.RequireFromString(balance)), fixedNow)
	if err := store.Create(context.Background(), acct); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
}

// failingCreateStore rejects every Create with a raw I/O error.
type failingCreateStore struct {
	storage.LedgerStore
}

func (f *failingCreateStore) Create(context.Context, *models.Account) error {
	return errDiskFull
}
