// Package server assembles the HTTP surface: middleware, public and
// protected route groups, swagger, and the health check.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"papertrade/internal/config"
	_ "papertrade/internal/docs" // Import swagger docs
	"papertrade/internal/handlers"
	"papertrade/internal/middleware"
	"papertrade/internal/services"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Store   handlers.Pinger
	Users   services.UserServicer
	Trading services.TradingServicer
	Market  services.MarketServicer
}

// NewRouter builds the gin engine serving the API.
func NewRouter(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users)
	marketHandler := handlers.NewMarketHandler(d.Market)
	tradeHandler := handlers.NewTradeHandler(d.Trading)
	portfolioHandler := handlers.NewPortfolioHandler(d.Trading)
	healthHandler := handlers.NewHealthHandler(d.Store)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", healthHandler.Health)

	v1 := router.Group("/api/v1")

	// Public routes
	limiter := middleware.NewIPRateLimiter(d.Config.AuthRateLimit, d.Config.AuthRateBurst)
	auth := v1.Group("/auth")
	auth.POST("/signup", middleware.RateLimit(limiter), authHandler.Signup)
	auth.POST("/login", middleware.RateLimit(limiter), authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)

	stocks := protected.Group("/stocks")
	stocks.GET("", marketHandler.ListStocks)
	stocks.GET("/:symbol", marketHandler.GetStock)
	stocks.GET("/:symbol/history", marketHandler.GetHistory)
	stocks.GET("/:symbol/chart", marketHandler.GetChart)

	trade := protected.Group("/trade")
	trade.POST("/buy", tradeHandler.Buy)
	trade.POST("/sell", tradeHandler.Sell)

	protected.GET("/dashboard", portfolioHandler.Dashboard)
	protected.GET("/portfolio", portfolioHandler.Portfolio)
	protected.GET("/transactions", portfolioHandler.Transactions)

	return router
}
