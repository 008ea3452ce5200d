package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/services"
)

// TradeHandler executes buy and sell orders.
type TradeHandler struct {
	tradingService services.TradingServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradingService services.TradingServicer) *TradeHandler {
	return &TradeHandler{tradingService: tradingService}
}

// TradeRequest represents a market order. Quantity is validated by the
// ledger so that non-positive values get the order-specific error.
type TradeRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Quantity int    `json:"quantity"`
}

// TradeResponse is returned for an executed order.
type TradeResponse struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	TransactionID string             `json:"transaction_id"`
	NewBalance    decimal.Decimal    `json:"new_balance"`
	Transaction   models.Transaction `json:"transaction"`
}

// TradeErrorResponse is returned for a rejected order.
type TradeErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Owned   *int   `json:"owned,omitempty"`
}

// Buy executes a market buy
// @Summary     Buy shares
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     200 {object} TradeResponse
// @Failure     400 {object} TradeErrorResponse "Invalid order or insufficient balance"
// @Failure     409 {object} TradeErrorResponse "Another order is in progress"
// @Failure     500 {object} TradeErrorResponse "Could not save the trade"
// @Router      /trade/buy [post]
func (h *TradeHandler) Buy(c *gin.Context) {
	h.trade(c, "bought", h.tradingService.Buy)
}

// Sell executes a market sell
// @Summary     Sell shares
// @Tags        trade
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     200 {object} TradeResponse
// @Failure     400 {object} TradeErrorResponse "Invalid order or insufficient shares"
// @Failure     409 {object} TradeErrorResponse "Another order is in progress"
// @Failure     500 {object} TradeErrorResponse "Could not save the trade"
// @Router      /trade/sell [post]
func (h *TradeHandler) Sell(c *gin.Context) {
	h.trade(c, "sold", h.tradingService.Sell)
}

type executeFunc func(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error)

func (h *TradeHandler) trade(c *gin.Context, verb string, execute executeFunc) {
	username, err := getUsername(c)
	if err != nil {
		respondTradeError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondTradeError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	receipt, err := execute(c.Request.Context(), username, req.Symbol, req.Quantity)
	if err != nil {
		respondTradeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TradeResponse{
		Success:       true,
		Message:       fmt.Sprintf("Successfully %s %d shares of %s", verb, receipt.Transaction.Quantity, receipt.Transaction.Symbol),
		TransactionID: receipt.Transaction.ID,
		NewBalance:    receipt.NewBalance,
		Transaction:   receipt.Transaction,
	})
}
