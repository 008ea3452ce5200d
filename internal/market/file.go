package market

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"papertrade/internal/models"
)

// snapshotFile is the on-disk layout:
//
//	[[stocks]]
//	symbol = "AAPL"
//	name   = "Apple Inc."
//	price  = "182.45"
//	change = "2.35"
type snapshotFile struct {
	Stocks []struct {
		Symbol string `toml:"symbol"`
		Name   string `toml:"name"`
		Price  string `toml:"price"`
		Change string `toml:"change"`
	} `toml:"stocks"`
}

// LoadFile reads a TOML quote snapshot. Prices are strings so they parse
// exactly into decimals.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read market data %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML quote snapshot.
func Parse(data []byte) (*Snapshot, error) {
	var f snapshotFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse market data: %w", err)
	}
	if len(f.Stocks) == 0 {
		return nil, fmt.Errorf("market data contains no stocks")
	}

	stocks := make([]models.Stock, 0, len(f.Stocks))
	for i, raw := range f.Stocks {
		symbol := Normalize(raw.Symbol)
		if symbol == "" {
			return nil, fmt.Errorf("stock #%d: symbol is required", i+1)
		}
		price, err := decimal.NewFromString(raw.Price)
		if err != nil {
			return nil, fmt.Errorf("stock %s: invalid price %q: %w", symbol, raw.Price, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("stock %s: price must be positive", symbol)
		}
		change := decimal.Zero
		if raw.Change != "" {
			if change, err = decimal.NewFromString(raw.Change); err != nil {
				return nil, fmt.Errorf("stock %s: invalid change %q: %w", symbol, raw.Change, err)
			}
		}
		stocks = append(stocks, models.Stock{Symbol: symbol, Name: raw.Name, Price: price, Change: change})
	}
	return NewSnapshot(stocks), nil
}
