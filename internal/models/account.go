package models

import (
	"time"
)

// Account is the persisted per-user ledger document. Stores key it by
// Username and bump Version on every successful write.
type Account struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
	Portfolio
}

// NewAccount builds a fresh account with an empty, funded portfolio.
func NewAccount(username, passwordHash string, portfolio Portfolio, now time.Time) *Account {
	return &Account{
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
		Portfolio: portfolio,
	}
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	out := *a
	out.Portfolio = a.Portfolio.Clone()
	return &out
}

// Normalize fills nil collections left by decoders so callers can write to them.
func (a *Account) Normalize() {
	if a.Holdings == nil {
		a.Holdings = map[string]Holding{}
	}
	if a.Transactions == nil {
		a.Transactions = []Transaction{}
	}
}
