package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/history"
	"papertrade/internal/models"
	"papertrade/internal/services"
)

// MarketHandler serves quotes and synthetic history.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

type symbolURI struct {
	Symbol string `uri:"symbol" binding:"required,ticker"`
}

type timeframeQuery struct {
	Timeframe string `form:"timeframe"`
}

// StockDetailResponse is a quote plus a found flag.
type StockDetailResponse struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Change decimal.Decimal `json:"change"`
	Found  bool            `json:"found"`
}

// StockNotFoundResponse is returned for unknown symbols.
type StockNotFoundResponse struct {
	Found bool   `json:"found"`
	Error string `json:"error"`
}

// ListStocks returns every quoted stock
// @Summary     List stocks
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Stock
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks [get]
func (h *MarketHandler) ListStocks(c *gin.Context) {
	stocks := h.marketService.ListStocks()
	if stocks == nil {
		stocks = []models.Stock{}
	}
	c.JSON(http.StatusOK, stocks)
}

// GetStock returns a single quote
// @Summary     Get stock
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} StockDetailResponse
// @Failure     404 {object} StockNotFoundResponse "Stock not found"
// @Router      /stocks/{symbol} [get]
func (h *MarketHandler) GetStock(c *gin.Context) {
	var uri symbolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		stockNotFound(c)
		return
	}

	stock, err := h.marketService.GetStock(uri.Symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			stockNotFound(c)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StockDetailResponse{
		Symbol: stock.Symbol,
		Name:   stock.Name,
		Price:  stock.Price,
		Change: stock.Change,
		Found:  true,
	})
}

func stockNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, StockNotFoundResponse{Found: false, Error: apperrors.ErrStockNotFound.Message})
}

// GetHistory returns a synthetic price series
// @Summary     Stock price history
// @Description Synthetic, decorative history anchored at the current quote. Unknown timeframes fall back to 1m.
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbol    path  string true  "Ticker symbol"
// @Param       timeframe query string false "5m, 1w or 1m" default(1m)
// @Success     200 {object} history.Series
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol}/history [get]
func (h *MarketHandler) GetHistory(c *gin.Context) {
	symbol, timeframe, ok := h.bindSeries(c)
	if !ok {
		return
	}

	series, err := h.marketService.History(symbol, timeframe)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetChart renders the synthetic series as a PNG
// @Summary     Stock price chart
// @Tags        market
// @Produce     png
// @Security    BearerAuth
// @Param       symbol    path  string true  "Ticker symbol"
// @Param       timeframe query string false "5m, 1w or 1m" default(1m)
// @Success     200 {file} binary
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol}/chart [get]
func (h *MarketHandler) GetChart(c *gin.Context) {
	symbol, timeframe, ok := h.bindSeries(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.marketService.Chart(symbol, timeframe, &buf); err != nil {
		respondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *MarketHandler) bindSeries(c *gin.Context) (symbol, timeframe string, ok bool) {
	var uri symbolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.ErrStockNotFound)
		return "", "", false
	}
	var q timeframeQuery
	_ = c.ShouldBindQuery(&q)
	return uri.Symbol, string(history.ParseTimeframe(q.Timeframe)), true
}
