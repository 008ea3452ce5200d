package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/models"
	"papertrade/internal/notify"
	"papertrade/internal/pagination"
	"papertrade/internal/storage"
)

// DefaultLockTimeout bounds how long an order waits for the user's lock.
const DefaultLockTimeout = 5 * time.Second

// DefaultNotifyTimeout bounds a single trade confirmation.
const DefaultNotifyTimeout = 2 * time.Second

type orderFunc func(p *models.Portfolio, symbol string, quantity int) (*ledger.Receipt, error)

// tradingService serializes orders per user and persists every executed
// order before reporting it.
type tradingService struct {
	store       storage.LedgerStore
	ledger      *ledger.Ledger
	notifier    notify.Notifier
	locks       *userLocks
	lockTimeout time.Duration

	// notifyTimeout bounds how long a confirmation may hold up the order
	// response. The order is already persisted when it runs.
	notifyTimeout time.Duration
	log           *zap.SugaredLogger
}

// NewTradingService creates a new TradingServicer.
func NewTradingService(store storage.LedgerStore, l *ledger.Ledger, notifier notify.Notifier, lockTimeout time.Duration) TradingServicer {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &tradingService{
		store:         store,
		ledger:        l,
		notifier:      notifier,
		locks:         newUserLocks(),
		lockTimeout:   lockTimeout,
		notifyTimeout: DefaultNotifyTimeout,
		log:           logger.Named("trading"),
	}
}

func (s *tradingService) Buy(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error) {
	return s.execute(ctx, username, models.TransactionTypeBuy, symbol, quantity, s.ledger.Buy)
}

func (s *tradingService) Sell(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error) {
	return s.execute(ctx, username, models.TransactionTypeSell, symbol, quantity, s.ledger.Sell)
}

func (s *tradingService) execute(ctx context.Context, username string, side models.TransactionType, symbol string, quantity int, op orderFunc) (*ledger.Receipt, error) {
	release, err := s.locks.acquire(ctx, username, s.lockTimeout)
	if err != nil {
		s.log.Warnw("order lock timeout", "username", username, "side", side, "symbol", symbol)
		return nil, err
	}

	var receipt *ledger.Receipt
	_, err = s.store.Update(ctx, username, func(acct *models.Account) error {
		r, err := op(&acct.Portfolio, symbol, quantity)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	release()

	if err != nil {
		err = storeError(err)
		s.log.Infow("order rejected", "username", username, "side", side, "symbol", symbol, "quantity", quantity, "error", err)
		return nil, err
	}

	s.log.Infow("order executed",
		"username", username,
		"side", side,
		"symbol", receipt.Transaction.Symbol,
		"quantity", quantity,
		"price", receipt.Transaction.Price,
		"new_balance", receipt.NewBalance,
		"transaction_id", receipt.Transaction.ID,
	)

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.TradeExecuted(nctx, username, receipt.Transaction); err != nil {
		s.log.Warnw("trade notification failed", "username", username, "transaction_id", receipt.Transaction.ID, "error", err)
	}
	return receipt, nil
}

// Dashboard values the portfolio and attaches the latest transactions.
func (s *tradingService) Dashboard(ctx context.Context, username string) (*Dashboard, error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, storeError(err)
	}

	v := s.ledger.Value(acct.Portfolio)
	return &Dashboard{
		Username:           acct.Username,
		Balance:            v.Balance,
		PortfolioValue:     v.HoldingsValue,
		TotalValue:         v.TotalValue,
		Positions:          v.Positions,
		RecentTransactions: acct.RecentTransactions(RecentTransactionLimit),
	}, nil
}

// Portfolio returns the full valuation with per-position gain/loss.
func (s *tradingService) Portfolio(ctx context.Context, username string) (*ledger.Valuation, error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, storeError(err)
	}
	v := s.ledger.Value(acct.Portfolio)
	return &v, nil
}

// Transactions pages through the trade log, newest first.
func (s *tradingService) Transactions(ctx context.Context, username string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, storeError(err)
	}
	resp := pagination.Slice(acct.NewestFirst(), page)
	return &resp, nil
}
