package surrealstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

var (
	surrealOnce sync.Once
	surrealAddr string
	surrealErr  error
)

func startSurrealDB(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping SurrealDB container test in short mode")
	}

	surrealOnce.Do(func() {
		ctx := context.Background()
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "surrealdb/surrealdb:v3.0.0",
				ExposedPorts: []string{"8000/tcp"},
				Cmd:          []string{"start", "--user", "root", "--pass", "root"},
				WaitingFor: wait.ForAll(
					wait.ForListeningPort("8000/tcp"),
					wait.ForLog("Started web server"),
				).WithDeadline(60 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			surrealErr = fmt.Errorf("start SurrealDB container: %w", err)
			return
		}
		host, err := container.Host(ctx)
		if err != nil {
			surrealErr = err
			return
		}
		port, err := container.MappedPort(ctx, "8000/tcp")
		if err != nil {
			surrealErr = err
			return
		}
		surrealAddr = fmt.Sprintf("ws://%s:%s/rpc", host, port.Port())
	})

	if surrealErr != nil {
		t.Skipf("SurrealDB unavailable: %v", surrealErr)
	}
	return surrealAddr
}

// testStore connects to a database unique to the calling test.
func testStore(t *testing.T) *Store {
	t.Helper()
	addr := startSurrealDB(t)

	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(context.Background(), Options{
		Addr:      addr,
		User:      "root",
		Pass:      "root",
		Namespace: "papertrade_test",
		Database:  fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenBadAddress(t *testing.T) {
	_, err := surrealdb.New("ws://127.0.0.1:1/rpc")
	if err == nil {
		t.Skip("driver connects lazily")
	}
	_, err = Open(context.Background(), Options{Addr: "ws://127.0.0.1:1/rpc"})
	assert.Error(t, err)
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	acct := testutil.WithHolding(testutil.NewAccount(t), "AMZN", 7, "182.10")
	require.NoError(t, s.Create(ctx, acct))
	assert.ErrorIs(t, s.Create(ctx, acct), apperrors.ErrDuplicateUsername)

	got, err := s.Get(ctx, acct.Username)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, 7, got.Holdings["AMZN"].Shares)
	assert.True(t, got.Holdings["AMZN"].AvgPrice.Equal(decimal.RequireFromString("182.10")))

	_, err = s.Get(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	acct := testutil.NewAccount(t)
	require.NoError(t, s.Create(ctx, acct))

	updated, err := s.Update(ctx, acct.Username, func(a *models.Account) error {
		a.Balance = a.Balance.Sub(decimal.RequireFromString("0.01"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	got, err := s.Get(ctx, acct.Username)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("9999.99")), "balance %s", got.Balance)
	assert.Equal(t, int64(2), got.Version)

	_, err = s.Update(ctx, acct.Username, func(*models.Account) error { return apperrors.ErrInsufficientBalance })
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	_, err = s.Update(ctx, "ghost", func(*models.Account) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.Create(ctx, testutil.NewAccountWithBalance(t, "bob", "1")))
	require.NoError(t, s.Create(ctx, testutil.NewAccountWithBalance(t, "alice", "1")))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
	assert.NoError(t, s.Ping(ctx))
}
