package services

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"papertrade/internal/history"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

// UserServicer defines the contract for signup and login.
type UserServicer interface {
	Signup(ctx context.Context, username, password, confirmPassword string) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
	GetAccount(ctx context.Context, username string) (*models.Account, error)
}

// Dashboard is the landing-page summary for one user.
type Dashboard struct {
	Username           string               `json:"username"`
	Balance            decimal.Decimal      `json:"balance"`
	PortfolioValue     decimal.Decimal      `json:"portfolio_value"`
	TotalValue         decimal.Decimal      `json:"total_value"`
	Positions          []ledger.Position    `json:"positions"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// RecentTransactionLimit caps the dashboard's transaction list.
const RecentTransactionLimit = 10

// TradingServicer defines the contract for order execution and portfolio reads.
type TradingServicer interface {
	Buy(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error)
	Sell(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error)
	Dashboard(ctx context.Context, username string) (*Dashboard, error)
	Portfolio(ctx context.Context, username string) (*ledger.Valuation, error)
	Transactions(ctx context.Context, username string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// MarketServicer defines the contract for quotes and synthetic history.
type MarketServicer interface {
	ListStocks() []models.Stock
	GetStock(symbol string) (models.Stock, error)
	History(symbol, timeframe string) (*history.Series, error)
	Chart(symbol, timeframe string, w io.Writer) error
}
