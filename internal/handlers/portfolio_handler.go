package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/pagination"
	"papertrade/internal/services"
)

// PortfolioHandler serves read-only views of a user's ledger.
type PortfolioHandler struct {
	tradingService services.TradingServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(tradingService services.TradingServicer) *PortfolioHandler {
	return &PortfolioHandler{tradingService: tradingService}
}

// Dashboard returns balances, positions and recent activity
// @Summary     Dashboard
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /dashboard [get]
func (h *PortfolioHandler) Dashboard(c *gin.Context) {
	username, err := getUsername(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.tradingService.Dashboard(c.Request.Context(), username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Portfolio returns the full valuation
// @Summary     Portfolio valuation
// @Description Positions marked to the current quote with gain/loss
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Valuation
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /portfolio [get]
func (h *PortfolioHandler) Portfolio(c *gin.Context) {
	username, err := getUsername(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.tradingService.Portfolio(c.Request.Context(), username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, valuation)
}

// Transactions lists the trade log, newest first
// @Summary     Transaction history
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number" default(1)
// @Param       page_size query int false "Items per page (max 100)" default(20)
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *PortfolioHandler) Transactions(c *gin.Context) {
	username, err := getUsername(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradingService.Transactions(c.Request.Context(), username, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
