package models

import "github.com/shopspring/decimal"

// Holding is a non-empty position in one symbol.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Shares   int             `json:"shares"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// Portfolio is a user's cash balance, open positions and trade log.
type Portfolio struct {
	Balance      decimal.Decimal    `json:"balance"`
	Holdings     map[string]Holding `json:"portfolio"`
	Transactions []Transaction      `json:"transactions"`
}

// NewPortfolio returns an empty portfolio funded with the opening balance.
func NewPortfolio(balance decimal.Decimal) Portfolio {
	return Portfolio{
		Balance:      balance,
		Holdings:     map[string]Holding{},
		Transactions: []Transaction{},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (p Portfolio) Clone() Portfolio {
	out := Portfolio{
		Balance:      p.Balance,
		Holdings:     make(map[string]Holding, len(p.Holdings)),
		Transactions: make([]Transaction, len(p.Transactions)),
	}
	for k, v := range p.Holdings {
		out.Holdings[k] = v
	}
	copy(out.Transactions, p.Transactions)
	return out
}

// RecentTransactions returns up to n of the latest transactions in insertion order.
func (p Portfolio) RecentTransactions(n int) []Transaction {
	if n <= 0 || len(p.Transactions) == 0 {
		return []Transaction{}
	}
	start := len(p.Transactions) - n
	if start < 0 {
		start = 0
	}
	out := make([]Transaction, len(p.Transactions)-start)
	copy(out, p.Transactions[start:])
	return out
}

// NewestFirst returns the trade log in reverse insertion order.
func (p Portfolio) NewestFirst() []Transaction {
	out := make([]Transaction, len(p.Transactions))
	for i, tx := range p.Transactions {
		out[len(p.Transactions)-1-i] = tx
	}
	return out
}
