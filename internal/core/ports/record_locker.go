package ports

import "context"

// Unlock releases a lock obtained from a RecordLocker. It is safe to call more than once.
type Unlock func()

// RecordLocker serializes work on one confirmation record across goroutines
// and, depending on the implementation, across service instances.
type RecordLocker interface {
	// Lock waits for the key up to the locker's bounded wait or ctx, then fails
	// with errs.ErrRecordBusy.
	Lock(ctx context.Context, key string) (Unlock, error)

	// TryLock does not wait; ok is false when the key is held elsewhere.
	TryLock(ctx context.Context, key string) (unlock Unlock, ok bool, err error)
}
