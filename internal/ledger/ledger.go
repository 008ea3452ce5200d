// Package ledger applies buy and sell orders to a portfolio and values it
// against the current market snapshot.
//
// The ledger is pure: it validates an order completely before touching the
// portfolio, so a rejected order leaves every field exactly as it was.
// Serializing orders against one portfolio and persisting the result are the
// caller's job.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/market"
	"papertrade/internal/models"
	"papertrade/internal/uuid"
)

// Receipt is the outcome of an executed order.
type Receipt struct {
	NewBalance  decimal.Decimal    `json:"new_balance"`
	Transaction models.Transaction `json:"transaction"`
}

// Ledger executes orders at the provider's current quote.
type Ledger struct {
	market market.Provider
	now    func() time.Time
	newID  func() string
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithClock overrides the transaction timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides the transaction id source.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New creates a Ledger pricing orders from provider.
func New(provider market.Provider, opts ...Option) *Ledger {
	l := &Ledger{
		market: provider,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Buy debits price*quantity from the balance and adds the shares, blending
// the average cost when the symbol is already held.
func (l *Ledger) Buy(p *models.Portfolio, symbol string, quantity int) (*Receipt, error) {
	stock, err := l.validate(symbol, quantity)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(quantity))
	total := stock.Price.Mul(qty)
	if total.GreaterThan(p.Balance) {
		return nil, apperrors.ErrInsufficientBalance
	}

	if p.Holdings == nil {
		p.Holdings = map[string]models.Holding{}
	}

	h, held := p.Holdings[stock.Symbol]
	if held {
		cost := h.AvgPrice.Mul(decimal.NewFromInt(int64(h.Shares))).Add(total)
		h.Shares += quantity
		h.AvgPrice = cost.Div(decimal.NewFromInt(int64(h.Shares)))
	} else {
		h = models.Holding{Symbol: stock.Symbol, Shares: quantity, AvgPrice: stock.Price}
	}

	p.Balance = p.Balance.Sub(total)
	p.Holdings[stock.Symbol] = h

	return l.record(p, models.TransactionTypeBuy, stock, quantity, total), nil
}

// Sell credits price*quantity to the balance and removes the shares. A
// position sold down to zero is deleted, discarding its cost basis.
func (l *Ledger) Sell(p *models.Portfolio, symbol string, quantity int) (*Receipt, error) {
	stock, err := l.validate(symbol, quantity)
	if err != nil {
		return nil, err
	}

	h, held := p.Holdings[stock.Symbol]
	if !held || h.Shares < quantity {
		return nil, apperrors.InsufficientShares(h.Shares)
	}

	total := stock.Price.Mul(decimal.NewFromInt(int64(quantity)))
	p.Balance = p.Balance.Add(total)

	h.Shares -= quantity
	if h.Shares == 0 {
		delete(p.Holdings, stock.Symbol)
	} else {
		p.Holdings[stock.Symbol] = h
	}

	return l.record(p, models.TransactionTypeSell, stock, quantity, total), nil
}

// Quote returns the current price for symbol, mapping a miss to the
// order-level rejection.
func (l *Ledger) Quote(symbol string) (models.Stock, error) {
	stock, err := l.market.Lookup(symbol)
	if err != nil {
		return models.Stock{}, apperrors.ErrUnknownSymbol
	}
	return stock, nil
}

func (l *Ledger) validate(symbol string, quantity int) (models.Stock, error) {
	stock, err := l.Quote(symbol)
	if err != nil {
		return models.Stock{}, err
	}
	if quantity <= 0 {
		return models.Stock{}, apperrors.ErrNonPositiveQuantity
	}
	return stock, nil
}

func (l *Ledger) record(p *models.Portfolio, side models.TransactionType, stock models.Stock, quantity int, total decimal.Decimal) *Receipt {
	tx := models.Transaction{
		ID:        l.newID(),
		Type:      side,
		Symbol:    stock.Symbol,
		Quantity:  quantity,
		Price:     stock.Price,
		Total:     total,
		Timestamp: l.now(),
		Status:    models.TransactionStatusConfirmed,
	}
	p.Transactions = append(p.Transactions, tx)
	return &Receipt{NewBalance: p.Balance, Transaction: tx}
}
