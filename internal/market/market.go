// Package market serves the read-only quote snapshot that trades execute against.
package market

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
)

// Provider looks up current quotes. Implementations must be safe for
// concurrent use and must not change a quote once handed out.
type Provider interface {
	Lookup(symbol string) (models.Stock, error)
	List() []models.Stock
}

// Snapshot is an immutable Provider backed by a map built once.
type Snapshot struct {
	bySymbol map[string]models.Stock
	ordered  []models.Stock
}

// NewSnapshot indexes stocks by upper-cased symbol. Later duplicates win.
func NewSnapshot(stocks []models.Stock) *Snapshot {
	s := &Snapshot{bySymbol: make(map[string]models.Stock, len(stocks))}
	for _, st := range stocks {
		st.Symbol = Normalize(st.Symbol)
		s.bySymbol[st.Symbol] = st
	}
	s.ordered = make([]models.Stock, 0, len(s.bySymbol))
	for _, st := range s.bySymbol {
		s.ordered = append(s.ordered, st)
	}
	sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i].Symbol < s.ordered[j].Symbol })
	return s
}

// Lookup returns the quote for symbol, case-insensitively.
func (s *Snapshot) Lookup(symbol string) (models.Stock, error) {
	st, ok := s.bySymbol[Normalize(symbol)]
	if !ok {
		return models.Stock{}, apperrors.ErrStockNotFound
	}
	return st, nil
}

// List returns every quote ordered by symbol. The slice is a copy.
func (s *Snapshot) List() []models.Stock {
	out := make([]models.Stock, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len reports how many symbols are quoted.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// Normalize canonicalizes user input into a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Default returns the built-in simulated quotes.
func Default() *Snapshot {
	return NewSnapshot([]models.Stock{
		quote("AAPL", "Apple Inc.", "182.45", "2.35"),
		quote("GOOGL", "Alphabet Inc.", "140.82", "-1.15"),
		quote("MSFT", "Microsoft Corp.", "380.61", "3.22"),
		quote("AMZN", "Amazon.com Inc.", "181.92", "-0.88"),
		quote("TSLA", "Tesla Inc.", "238.45", "5.67"),
		quote("META", "Meta Platforms", "485.72", "8.34"),
		quote("NFLX", "Netflix Inc.", "247.18", "-2.10"),
		quote("NVIDIA", "NVIDIA Corp.", "875.29", "12.45"),
	})
}

func quote(symbol, name, price, change string) models.Stock {
	return models.Stock{
		Symbol: symbol,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Change: decimal.RequireFromString(change),
	}
}
