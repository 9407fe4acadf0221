// Package keylock provides per-key mutual exclusion inside one process.
package keylock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

const DefaultWait = 5 * time.Second

type entry struct {
	slot chan struct{}
	refs int
}

// Locker implements ports.RecordLocker for a single service instance.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
	wait    time.Duration
}

func New(wait time.Duration) *Locker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Locker{entries: make(map[string]*entry), wait: wait}
}

func (l *Locker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	e := l.acquire(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case e.slot <- struct{}{}:
		return l.unlocker(key, e), nil
	case <-timer.C:
		l.release(key, e)
		return nil, fmt.Errorf("%w: %s", errs.ErrRecordBusy, key)
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrRecordBusy, key, ctx.Err())
	}
}

func (l *Locker) TryLock(_ context.Context, key string) (ports.Unlock, bool, error) {
	e := l.acquire(key)

	select {
	case e.slot <- struct{}{}:
		return l.unlocker(key, e), true, nil
	default:
		l.release(key, e)
		return nil, false, nil
	}
}

func (l *Locker) unlocker(key string, e *entry) ports.Unlock {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.slot
			l.release(key, e)
		})
	}
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{slot: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
