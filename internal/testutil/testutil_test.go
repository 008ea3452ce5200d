package testutil_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Model(&models.LedgerRecord{}).Count(&count).Error; err != nil {
		t.Errorf("ledgers table should exist after migration: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	a := testutil.NewAccount(t)
	b := testutil.NewAccount(t)
	if a.Username == b.Username {
		t.Fatal("fixture usernames should be unique")
	}

	testutil.AssertDecimal(t, "balance", a.Balance, "10000")
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(testutil.TestPassword)); err != nil {
		t.Errorf("fixture password should verify: %v", err)
	}

	testutil.WithHolding(a, "AAPL", 4, "150.25")
	if a.Holdings["AAPL"].Shares != 4 {
		t.Errorf("expected 4 shares, got %d", a.Holdings["AAPL"].Shares)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrUserNotFound, "custom message")
	got := testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	if got.Message != "custom message" {
		t.Errorf("expected custom message, got %q", got.Message)
	}
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
