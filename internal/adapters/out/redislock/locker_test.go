package redislock

import (
	"context"
	"testing"
	"time"

	"handoff/internal/pkg/errs"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, wait time.Duration) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	l := New(mr.Addr(), time.Minute, wait)
	t.Cleanup(func() { _ = l.Close() })
	return l, mr
}

func TestLocker_TryLock(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "confirmation:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, mr.Exists(keyPrefix+"confirmation:1"))
	require.Equal(t, time.Minute, mr.TTL(keyPrefix+"confirmation:1"))

	_, ok, err = l.TryLock(ctx, "confirmation:1")
	require.NoError(t, err)
	require.False(t, ok)

	unlock()
	require.False(t, mr.Exists(keyPrefix+"confirmation:1"))

	_, ok, err = l.TryLock(ctx, "confirmation:1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLocker_LockGivesUpAfterWait(t *testing.T) {
	l, _ := newTestLocker(t, 50*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	defer unlock()

	_, err = l.Lock(ctx, "k")
	require.ErrorIs(t, err, errs.ErrRecordBusy)
}

func TestLocker_LockWaitsForRelease(t *testing.T) {
	l, _ := newTestLocker(t, time.Second)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	time.AfterFunc(50*time.Millisecond, unlock)

	second, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	second()
}

func TestLocker_UnlockDoesNotReleaseForeignLease(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	// lease expired and another instance took it over
	mr.FastForward(2 * time.Minute)
	require.NoError(t, mr.Set(keyPrefix+"k", "other-holder"))

	unlock()

	got, err := mr.Get(keyPrefix + "k")
	require.NoError(t, err)
	require.Equal(t, "other-holder", got)
}

func TestLocker_RedisUnavailable(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	mr.Close()

	_, _, err := l.TryLock(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis lock")
}
