package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"papertrade/internal/config"
	"papertrade/internal/models"
	"papertrade/internal/storage/filestore"
	"papertrade/internal/testutil"
)

func TestOpenFile(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{
		Backend:  config.BackendFile,
		DataFile: filepath.Join(t.TempDir(), "ledger.json"),
	})
	testutil.AssertNoError(t, err)
	defer store.Close()

	if store.Name() != "file" {
		t.Errorf("expected file store, got %s", store.Name())
	}
	testutil.AssertNoError(t, store.Ping(context.Background()))
}

func TestOpenSQLite(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{
		Backend:     config.BackendSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "ledger.db"),
		AutoMigrate: true,
	})
	testutil.AssertNoError(t, err)
	defer store.Close()

	if store.Name() != "sqlite" {
		t.Errorf("expected sqlite store, got %s", store.Name())
	}

	ctx := context.Background()
	acct := testutil.NewAccount(t)
	testutil.AssertNoError(t, store.Create(ctx, acct))
	got, err := store.Get(ctx, acct.Username)
	testutil.AssertNoError(t, err)
	if got.Username != acct.Username {
		t.Errorf("expected %s, got %s", acct.Username, got.Username)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), config.StorageConfig{Backend: "dynamo"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestFileStoreUpdateThroughInterface(t *testing.T) {
	fs, err := filestore.New(filepath.Join(t.TempDir(), "ledger.json"))
	testutil.AssertNoError(t, err)
	defer fs.Close()

	var store LedgerStore = fs
	ctx := context.Background()
	acct := testutil.NewAccount(t)
	testutil.AssertNoError(t, store.Create(ctx, acct))

	var credit UpdateFunc = func(a *models.Account) error {
		a.Portfolio.Balance = a.Portfolio.Balance.Add(decimal.RequireFromString("5.00"))
		return nil
	}
	got, err := store.Update(ctx, acct.Username, credit)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "balance", got.Portfolio.Balance, "10005.00")
}
