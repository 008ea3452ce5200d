// Package notify delivers best-effort trade confirmations. A failed
// notification never affects the trade that triggered it.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"papertrade/internal/config"
	"papertrade/internal/models"
)

// Notifier is told about every executed trade.
type Notifier interface {
	TradeExecuted(ctx context.Context, username string, tx models.Transaction) error
	Close() error
}

// Confirmation is the human-readable form of an executed trade.
type Confirmation struct {
	Subject string
	Body    string
}

// New builds the notifier selected by cfg.Backend.
func New(cfg config.NotifyConfig) (Notifier, error) {
	switch cfg.Backend {
	case config.NotifyLog, "":
		return NewLogNotifier(), nil
	case config.NotifyKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("notify: kafka backend needs at least one broker")
		}
		return NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.NotifyNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("notify: unknown backend %q", cfg.Backend)
	}
}

// Confirm formats the confirmation for a trade.
func Confirm(username string, tx models.Transaction) Confirmation {
	subject := fmt.Sprintf("Trade Executed: %s %d shares of %s", tx.Type, tx.Quantity, tx.Symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	b.WriteString("Your trade has been executed successfully.\n\n")
	fmt.Fprintf(&b, "Action:   %s\n", tx.Type)
	fmt.Fprintf(&b, "Symbol:   %s\n", tx.Symbol)
	fmt.Fprintf(&b, "Quantity: %d\n", tx.Quantity)
	fmt.Fprintf(&b, "Price:    %s\n", FormatUSD(tx.Price))
	fmt.Fprintf(&b, "Total:    %s\n", FormatUSD(tx.Total))
	fmt.Fprintf(&b, "Time:     %s\n", tx.Timestamp.UTC().Format(time.RFC3339))

	return Confirmation{Subject: subject, Body: b.String()}
}

// FormatUSD renders an amount as dollars, e.g. "$1,824.50".
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Nop discards notifications.
type Nop struct{}

func (Nop) TradeExecuted(context.Context, string, models.Transaction) error { return nil }
func (Nop) Close() error                                                    { return nil }
