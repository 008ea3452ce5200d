package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	apperrors "papertrade/internal/errors"
)

// userLocks hands out one FIFO semaphore per username. Entries are
// reference counted and dropped once nobody holds or waits on them.
type userLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{entries: make(map[string]*lockEntry)}
}

// acquire waits up to timeout for the user's lock. The returned func
// releases it and must be called exactly once.
func (l *userLocks) acquire(ctx context.Context, username string, timeout time.Duration) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[username]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[username] = e
	}
	e.refs++
	l.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(username, e)
		return nil, apperrors.Wrap(apperrors.ErrLedgerBusy, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.unref(username, e)
		})
	}, nil
}

func (l *userLocks) unref(username string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, username)
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
