package guard_test

import (
	"errors"
	"testing"

	"handoff/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLeaseIsNotConstructed = errors.New("lease must be created via newLease")

type lease struct {
	key string

	guard guard.ConstructorGuard
}

func newLease(key string) (lease, error) {
	if key == "" {
		return lease{}, errors.New("key is required")
	}
	return lease{key: key, guard: guard.NewConstructorGuard()}, nil
}

func (l lease) Validate() error {
	return l.guard.Validate(errLeaseIsNotConstructed)
}

func TestConstructorGuard(t *testing.T) {
	t.Run("constructed guard validates", func(t *testing.T) {
		require.NoError(t, guard.NewConstructorGuard().Validate(errLeaseIsNotConstructed))
	})

	t.Run("zero value returns the given error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.ErrorIs(t, g.Validate(errLeaseIsNotConstructed), errLeaseIsNotConstructed)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.ErrorIs(t, g.Validate(nil), guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	built, err := newLease("confirmation:leg-1")
	require.NoError(t, err)
	require.NoError(t, built.Validate())

	copied := built
	require.NoError(t, copied.Validate())

	_, err = newLease("")
	require.Error(t, err)

	assert.ErrorIs(t, lease{key: "confirmation:leg-1"}.Validate(), errLeaseIsNotConstructed)
}
