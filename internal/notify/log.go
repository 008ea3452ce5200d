package notify

import (
	"context"

	"go.uber.org/zap"

	"papertrade/internal/logger"
	"papertrade/internal/models"
)

// LogNotifier writes confirmations to the application log.
type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Named("notify")}
}

func (n *LogNotifier) TradeExecuted(_ context.Context, username string, tx models.Transaction) error {
	c := Confirm(username, tx)
	n.log.Infow(c.Subject,
		"username", username,
		"transaction_id", tx.ID,
		"type", tx.Type,
		"symbol", tx.Symbol,
		"quantity", tx.Quantity,
		"price", FormatUSD(tx.Price),
		"total", FormatUSD(tx.Total),
	)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
