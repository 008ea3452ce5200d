package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
)

func setupTradeRouter(handler *TradeHandler) *gin.Engine {
	r := gin.New()
	r.POST("/trade/buy", injectUsername("alice"), handler.Buy)
	r.POST("/trade/sell", injectUsername("alice"), handler.Sell)
	return r
}

func receipt(side models.TransactionType, symbol string, qty int, price, balance string) *ledger.Receipt {
	p := decimal.RequireFromString(price)
	return &ledger.Receipt{
		NewBalance: decimal.RequireFromString(balance),
		Transaction: models.Transaction{
			ID:        "tx-1",
			Type:      side,
			Symbol:    symbol,
			Quantity:  qty,
			Price:     p,
			Total:     p.Mul(decimal.NewFromInt(int64(qty))),
			Timestamp: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
			Status:    models.TransactionStatusConfirmed,
		},
	}
}

func TestTradeHandler_Buy(t *testing.T) {
	t.Run("returns receipt on success", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(_ context.Context, username, symbol string, quantity int) (*ledger.Receipt, error) {
				if username != "alice" || symbol != "aapl" || quantity != 10 {
					t.Errorf("unexpected call %s %s %d", username, symbol, quantity)
				}
				return receipt(models.TransactionTypeBuy, "AAPL", 10, "171.25", "8287.50"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))

		rec := doRequest(r, http.MethodPost, "/trade/buy", `{"symbol":"aapl","quantity":10}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success=true")
		}
		if result["message"] != "Successfully bought 10 shares of AAPL" {
			t.Errorf("unexpected message %v", result["message"])
		}
		if result["new_balance"] != 8287.5 {
			t.Errorf("expected new_balance 8287.5, got %v", result["new_balance"])
		}
		if result["transaction_id"] != "tx-1" {
			t.Errorf("unexpected transaction id %v", result["transaction_id"])
		}
		tx := result["transaction"].(map[string]interface{})
		if tx["total"] != 1712.5 || tx["status"] != "CONFIRMED" {
			t.Errorf("unexpected transaction %v", tx)
		}
	})

	t.Run("rejects insufficient balance", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(context.Context, string, string, int) (*ledger.Receipt, error) {
				return nil, apperrors.ErrInsufficientBalance
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))

		rec := doRequest(r, http.MethodPost, "/trade/buy", `{"symbol":"AAPL","quantity":1000}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["success"] != false || result["error"] != "Insufficient balance" {
			t.Errorf("unexpected body %v", result)
		}
		if result["code"] != "INSUFFICIENT_BALANCE" {
			t.Errorf("unexpected code %v", result["code"])
		}
	})

	t.Run("requires symbol", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradingService{}))
		rec := doRequest(r, http.MethodPost, "/trade/buy", `{"quantity":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["code"] != "INVALID_INPUT" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("passes non-positive quantity to the ledger", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(_ context.Context, _, _ string, quantity int) (*ledger.Receipt, error) {
				if quantity != 0 {
					t.Errorf("expected 0, got %d", quantity)
				}
				return nil, apperrors.ErrNonPositiveQuantity
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))
		rec := doRequest(r, http.MethodPost, "/trade/buy", `{"symbol":"AAPL"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "Quantity must be positive" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("reports busy ledger as conflict", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(context.Context, string, string, int) (*ledger.Receipt, error) {
				return nil, apperrors.Wrap(apperrors.ErrLedgerBusy, context.DeadlineExceeded)
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))
		rec := doRequest(r, http.MethodPost, "/trade/buy", `{"symbol":"AAPL","quantity":1}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if parseJSON(t, rec)["code"] != "LEDGER_BUSY" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})
}

func TestTradeHandler_Sell(t *testing.T) {
	t.Run("returns receipt on success", func(t *testing.T) {
		svc := &mockTradingService{
			sellFn: func(context.Context, string, string, int) (*ledger.Receipt, error) {
				return receipt(models.TransactionTypeSell, "AAPL", 4, "171.25", "10685.00"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))

		rec := doRequest(r, http.MethodPost, "/trade/sell", `{"symbol":"AAPL","quantity":4}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["message"] != "Successfully sold 4 shares of AAPL" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("includes owned shares on rejection", func(t *testing.T) {
		svc := &mockTradingService{
			sellFn: func(context.Context, string, string, int) (*ledger.Receipt, error) {
				return nil, apperrors.InsufficientShares(3)
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc))

		rec := doRequest(r, http.MethodPost, "/trade/sell", `{"symbol":"AAPL","quantity":5}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["error"] != "Insufficient shares. You own 3" {
			t.Errorf("unexpected error %v", result["error"])
		}
		if result["owned"] != 3.0 {
			t.Errorf("expected owned=3, got %v", result["owned"])
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.POST("/trade/sell", NewTradeHandler(&mockTradingService{}).Sell)
		rec := doRequest(r, http.MethodPost, "/trade/sell", `{"symbol":"AAPL","quantity":1}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
