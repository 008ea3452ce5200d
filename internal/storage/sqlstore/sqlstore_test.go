package sqlstore

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

func setup(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return New(db, nil)
}

func TestName(t *testing.T) {
	if got := setup(t).Name(); got != "sqlite" {
		t.Errorf("expected sqlite, got %s", got)
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := setup(t)
	acct := testutil.WithHolding(testutil.NewAccount(t), "MSFT", 2, "415.50")

	testutil.AssertNoError(t, store.Create(ctx, acct))
	if acct.Version != 1 {
		t.Errorf("expected version 1, got %d", acct.Version)
	}

	got, err := store.Get(ctx, acct.Username)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "balance", got.Balance, "10000")
	if got.Holdings["MSFT"].Shares != 2 {
		t.Errorf("expected 2 MSFT shares, got %d", got.Holdings["MSFT"].Shares)
	}
	testutil.AssertDecimal(t, "avg price", got.Holdings["MSFT"].AvgPrice, "415.50")

	t.Run("duplicate", func(t *testing.T) {
		err := store.Create(ctx, acct)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nobody")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists mutation", func(t *testing.T) {
		store := setup(t)
		acct := testutil.NewAccount(t)
		testutil.AssertNoError(t, store.Create(ctx, acct))

		updated, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
			a.Balance = decimal.RequireFromString("9500.25")
			return nil
		})
		testutil.AssertNoError(t, err)
		if updated.Version != 2 {
			t.Errorf("expected version 2, got %d", updated.Version)
		}

		got, err := store.Get(ctx, acct.Username)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "balance", got.Balance, "9500.25")
		if got.Version != 2 {
			t.Errorf("expected stored version 2, got %d", got.Version)
		}
	})

	t.Run("fn error is returned unchanged", func(t *testing.T) {
		store := setup(t)
		acct := testutil.NewAccount(t)
		testutil.AssertNoError(t, store.Create(ctx, acct))

		_, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
			a.Balance = decimal.Zero
			return apperrors.InsufficientShares(0)
		})
		testutil.AssertAppError(t, err, "INSUFFICIENT_SHARES")

		got, _ := store.Get(ctx, acct.Username)
		testutil.AssertDecimal(t, "balance", got.Balance, "10000")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := setup(t).Update(ctx, "nobody", func(*models.Account) error { return nil })
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("conflicting write retries", func(t *testing.T) {
		store := setup(t)
		acct := testutil.NewAccount(t)
		testutil.AssertNoError(t, store.Create(ctx, acct))

		calls := 0
		updated, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
			calls++
			if calls == 1 {
				// Another writer sneaks in between read and write.
				_, err := store.Update(ctx, acct.Username, func(b *models.Account) error {
					b.Balance = b.Balance.Sub(decimal.NewFromInt(1))
					return nil
				})
				if err != nil {
					return err
				}
			}
			a.Balance = a.Balance.Sub(decimal.NewFromInt(10))
			return nil
		})
		testutil.AssertNoError(t, err)
		if calls != 2 {
			t.Errorf("expected fn to run twice, ran %d times", calls)
		}
		testutil.AssertDecimal(t, "balance", updated.Balance, "9989")
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		store := setup(t)
		acct := testutil.NewAccount(t)
		testutil.AssertNoError(t, store.Create(ctx, acct))

		_, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
			_, err := store.Update(ctx, acct.Username, func(*models.Account) error { return nil })
			return err
		})
		testutil.AssertAppError(t, err, "LEDGER_BUSY")
	})
}

func TestConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := setup(t)
	acct := testutil.NewAccount(t)
	testutil.AssertNoError(t, store.Create(ctx, acct))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
				a.Balance = a.Balance.Sub(decimal.NewFromInt(1))
				return nil
			})
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, acct.Username)
	testutil.AssertNoError(t, err)
	want := decimal.NewFromInt(int64(10000 - applied))
	if !got.Balance.Equal(want) {
		t.Errorf("lost update: %d writes applied but balance is %s", applied, got.Balance)
	}
	if got.Version != int64(1+applied) {
		t.Errorf("expected version %d, got %d", 1+applied, got.Version)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := setup(t)
	for _, name := range []string{"zed", "amy"} {
		testutil.AssertNoError(t, store.Create(ctx, testutil.NewAccountWithBalance(t, name, "100")))
	}

	names, err := store.List(ctx)
	testutil.AssertNoError(t, err)
	if len(names) != 2 || names[0] != "amy" || names[1] != "zed" {
		t.Errorf("unexpected names %v", names)
	}
}
