package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the side of an executed order
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// TransactionStatus is the settlement state of a transaction. Orders execute
// immediately, so every recorded transaction is confirmed.
type TransactionStatus string

const (
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
)

// Transaction is one entry in a portfolio's append-only trade log.
type Transaction struct {
	ID        string            `json:"id"`
	Type      TransactionType   `json:"type"`
	Symbol    string            `json:"symbol"`
	Quantity  int               `json:"quantity"`
	Price     decimal.Decimal   `json:"price"`
	Total     decimal.Decimal   `json:"total"`
	Timestamp time.Time         `json:"timestamp"`
	Status    TransactionStatus `json:"status"`
}
