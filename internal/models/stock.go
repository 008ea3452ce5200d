package models

import "github.com/shopspring/decimal"

// Stock is a quoted instrument from the market data snapshot.
type Stock struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Change decimal.Decimal `json:"change"`
}
