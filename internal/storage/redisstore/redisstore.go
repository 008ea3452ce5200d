// Package redisstore keeps each ledger as a JSON string under its own key
// and the set of known usernames in a companion set.
//
// Keys:
//
//	<prefix>:ledger:<username>  account document
//	<prefix>:users              set of usernames
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
	"papertrade/internal/models"

	"github.com/redis/go-redis/v9"
)

// maxAttempts matches storage.MaxUpdateAttempts.
const maxAttempts = 5

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store is a LedgerStore backed by Redis.
type Store struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: connect %s: %w", opts.Addr, err)
	}

	logger.Named("storage.redis").Infow("connected", "addr", opts.Addr, "db", opts.DB, "prefix", opts.Prefix)
	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "papertrade"
	}
	return &Store{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Name() string { return "redis" }

func (s *Store) ledgerKey(username string) string { return s.prefix + ":ledger:" + username }
func (s *Store) usersKey() string                 { return s.prefix + ":users" }

func (s *Store) Create(ctx context.Context, acct *models.Account) error {
	stored := acct.Clone()
	stored.Normalize()
	stored.Version = 1
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("redisstore: encode account: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.ledgerKey(acct.Username), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redisstore: create ledger: %w", err)
	}
	if !ok {
		return apperrors.ErrDuplicateUsername
	}
	if err := s.client.SAdd(ctx, s.usersKey(), acct.Username).Err(); err != nil {
		return fmt.Errorf("redisstore: index user: %w", err)
	}
	acct.Version = 1
	return nil
}

func (s *Store) Get(ctx context.Context, username string) (*models.Account, error) {
	data, err := s.client.Get(ctx, s.ledgerKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get ledger: %w", err)
	}
	return decode(username, data)
}

// Update runs fn inside WATCH/MULTI so a concurrent write to the same key
// aborts the transaction and the read-modify-write is retried.
func (s *Store) Update(ctx context.Context, username string, fn func(*models.Account) error) (*models.Account, error) {
	key := s.ledgerKey(username)
	log := logger.Named("storage.redis")

	var result *models.Account
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("redisstore: get ledger: %w", err)
		}
		acct, err := decode(username, data)
		if err != nil {
			return err
		}

		prev := acct.Version
		if err := fn(acct); err != nil {
			return err
		}
		acct.Username = username
		acct.Version = prev + 1
		acct.UpdatedAt = s.now()
		out, err := json.Marshal(acct)
		if err != nil {
			return fmt.Errorf("redisstore: encode account: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err == nil {
			result = acct
		}
		return err
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		log.Debugw("watched key changed, retrying", "username", username, "attempt", attempt)
	}
	return nil, apperrors.ErrLedgerBusy
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.usersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list users: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func decode(username string, data []byte) (*models.Account, error) {
	var acct models.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("redisstore: decode ledger %s: %w", username, err)
	}
	acct.Username = username
	acct.Normalize()
	return &acct, nil
}
