// Package redislock implements ports.RecordLocker on Redis so that several
// service instances serialize work on the same confirmation record.
package redislock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "handoff:lock:"
	retryInterval = 25 * time.Millisecond
	unlockTimeout = 2 * time.Second
)

// The lease is deleted only by the holder that set it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	c    *redis.Client
	ttl  time.Duration
	wait time.Duration
}

// New connects to addr. ttl bounds how long a crashed holder can keep a
// record; wait bounds how long Lock blocks.
func New(addr string, ttl, wait time.Duration) *Locker {
	return newWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl, wait)
}

func newWithClient(c *redis.Client, ttl, wait time.Duration) *Locker {
	return &Locker{c: c, ttl: ttl, wait: wait}
}

func (l *Locker) Ping(ctx context.Context) error {
	return errors.Wrap(l.c.Ping(ctx).Err(), "redis ping")
}

func (l *Locker) Close() error {
	return l.c.Close()
}

func (l *Locker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	deadline := time.Now().Add(l.wait)
	for {
		unlock, ok, err := l.TryLock(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return unlock, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", errs.ErrRecordBusy, key)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", errs.ErrRecordBusy, key, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

func (l *Locker) TryLock(ctx context.Context, key string) (ports.Unlock, bool, error) {
	token := uuid.NewString()
	ok, err := l.c.SetNX(ctx, keyPrefix+key, token, l.ttl).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "redis lock")
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be done when the work finished.
			ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
			defer cancel()
			_ = releaseScript.Run(ctx, l.c, []string{keyPrefix + key}, token).Err()
		})
	}, true, nil
}
