package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("papertrade"),
		tcpostgres.WithUsername("papertrade"),
		tcpostgres.WithPassword("papertrade"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LedgerRecord{}))
	return db
}

func TestPostgresStore(t *testing.T) {
	db := startPostgres(t)
	store := New(db, nil)
	ctx := context.Background()

	assert.Equal(t, "postgres", store.Name())
	require.NoError(t, store.Ping(ctx))

	acct := testutil.NewAccount(t)
	require.NoError(t, store.Create(ctx, acct))
	assert.ErrorIs(t, store.Create(ctx, acct), apperrors.ErrDuplicateUsername)

	updated, err := store.Update(ctx, acct.Username, func(a *models.Account) error {
		a.Holdings["GOOGL"] = models.Holding{Symbol: "GOOGL", Shares: 4, AvgPrice: decimal.RequireFromString("171.25")}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	got, err := store.Get(ctx, acct.Username)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Holdings["GOOGL"].Shares)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, acct.Username)
}
