package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"papertrade/internal/config"
	"papertrade/internal/history"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/market"
	"papertrade/internal/notify"
	"papertrade/internal/server"
	"papertrade/internal/services"
	"papertrade/internal/storage"
	"papertrade/internal/validator"
)

// @title           Papertrade API
// @version         1.0
// @description     Papertrade is a simulated stock trading service: sign up with virtual cash, buy and sell against a quoted market, and track your portfolio.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	snapshot, err := loadMarket(appConfig.MarketDataFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, appConfig.Storage)
	if err != nil {
		return fmt.Errorf("failed to open %s ledger store: %w", appConfig.Storage.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnw("ledger store close failed", "error", err)
		}
	}()

	notifier, err := notify.New(appConfig.Notify)
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Warnw("notifier close failed", "error", err)
		}
	}()

	// Initialize services
	userService := services.NewUserService(store, appConfig.InitialBalance)
	tradingService := services.NewTradingService(store, ledger.New(snapshot), notifier, appConfig.LockTimeout)
	marketService := services.NewMarketService(snapshot, history.NewSynthesizer())

	router := server.NewRouter(server.Deps{
		Config:  appConfig,
		Store:   store,
		Users:   userService,
		Trading: tradingService,
		Market:  marketService,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	printBanner(appConfig, store.Name(), snapshot.Len())

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting papertrade server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		log.Infow("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http server shutdown failed", "error", err)
	}

	printShutdownBanner()
	log.Info("Server stopped")
	return nil
}

func loadMarket(path string) (*market.Snapshot, error) {
	if path == "" {
		return market.Default(), nil
	}
	snapshot, err := market.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load market data from %s: %w", path, err)
	}
	return snapshot, nil
}
