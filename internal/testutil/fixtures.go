package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/models"
)

// TestPassword is the plaintext behind every fixture account's hash.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniqueUsername returns a username not used by any other fixture in this run.
func UniqueUsername() string {
	return fmt.Sprintf("trader%d", nextID())
}

// NewAccount builds an unsaved account with a bcrypt hash of TestPassword
// and the standard opening balance.
func NewAccount(t *testing.T) *models.Account {
	t.Helper()
	return NewAccountWithBalance(t, UniqueUsername(), "10000.00")
}

// NewAccountWithBalance builds an unsaved account with the given username and balance.
func NewAccountWithBalance(t *testing.T, username, balance string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	bal, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("invalid fixture balance %q: %v", balance, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.NewAccount(username, string(hash), models.NewPortfolio(bal), now)
}

// WithHolding adds a position to an unsaved fixture account.
func WithHolding(acct *models.Account, symbol string, shares int, avgPrice string) *models.Account {
	acct.Holdings[symbol] = models.Holding{
		Symbol:   symbol,
		Shares:   shares,
		AvgPrice: decimal.RequireFromString(avgPrice),
	}
	return acct
}
