package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"papertrade/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Position is one holding marked to the current quote.
type Position struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	Shares          int             `json:"shares"`
	AvgPrice        decimal.Decimal `json:"avg_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	PositionValue   decimal.Decimal `json:"position_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
}

// Valuation marks a whole portfolio to market.
type Valuation struct {
	Balance       decimal.Decimal `json:"balance"`
	HoldingsValue decimal.Decimal `json:"portfolio_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Positions     []Position      `json:"positions"`
}

// Value computes position values and gain/loss without mutating p.
// Holdings whose symbol is no longer quoted are left out of the totals.
// Positions are ordered by symbol.
func (l *Ledger) Value(p models.Portfolio) Valuation {
	v := Valuation{
		Balance:       p.Balance,
		HoldingsValue: decimal.Zero,
		Positions:     make([]Position, 0, len(p.Holdings)),
	}

	for symbol, h := range p.Holdings {
		stock, err := l.market.Lookup(symbol)
		if err != nil {
			continue
		}

		shares := decimal.NewFromInt(int64(h.Shares))
		value := stock.Price.Mul(shares)
		pos := Position{
			Symbol:          symbol,
			Name:            stock.Name,
			Shares:          h.Shares,
			AvgPrice:        h.AvgPrice,
			CurrentPrice:    stock.Price,
			PositionValue:   value,
			GainLoss:        value.Sub(h.AvgPrice.Mul(shares)),
			GainLossPercent: decimal.Zero,
		}
		if !h.AvgPrice.IsZero() {
			pos.GainLossPercent = stock.Price.Sub(h.AvgPrice).Div(h.AvgPrice).Mul(hundred).Round(2)
		}

		v.HoldingsValue = v.HoldingsValue.Add(value)
		v.Positions = append(v.Positions, pos)
	}

	sort.Slice(v.Positions, func(i, j int) bool { return v.Positions[i].Symbol < v.Positions[j].Symbol })
	v.TotalValue = v.Balance.Add(v.HoldingsValue)
	return v
}
