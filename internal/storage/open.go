package storage

import (
	"context"
	"fmt"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/logger"
	"papertrade/internal/storage/filestore"
	"papertrade/internal/storage/redisstore"
	"papertrade/internal/storage/sqlstore"
	"papertrade/internal/storage/surrealstore"
)

var (
	_ LedgerStore = (*filestore.Store)(nil)
	_ LedgerStore = (*sqlstore.Store)(nil)
	_ LedgerStore = (*redisstore.Store)(nil)
	_ LedgerStore = (*surrealstore.Store)(nil)
)

// Open connects the backend named by cfg.Backend. It is called once at
// startup; the returned store is shared by every request.
func Open(ctx context.Context, cfg config.StorageConfig) (LedgerStore, error) {
	log := logger.Named("storage")
	log.Infow("opening ledger store", "backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendFile, "":
		return filestore.New(cfg.DataFile)

	case config.BackendRedis:
		return redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})

	case config.BackendSurreal:
		return surrealstore.Open(ctx, surrealstore.Options{
			Addr:      cfg.SurrealAddr,
			User:      cfg.SurrealUser,
			Pass:      cfg.SurrealPass,
			Namespace: cfg.SurrealNS,
			Database:  cfg.SurrealDB,
		})

	case config.BackendPostgres, config.BackendSQLite:
		mgr, err := database.NewManager(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := mgr.Migrate(); err != nil {
				_ = mgr.Close()
				return nil, err
			}
		}
		return sqlstore.New(mgr.DB(), mgr.Close), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
