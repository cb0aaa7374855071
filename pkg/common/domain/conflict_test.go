package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errConflict = errors.New("conflict")

func TestRetryOnConflict(t *testing.T) {
	t.Run("Stops after success", func(t *testing.T) {
		calls := 0
		err := RetryOnConflict(errConflict, func() error {
			calls++
			if calls < 3 {
				return errors.Wrap(errConflict, "stale version")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Does not retry other errors", func(t *testing.T) {
		calls := 0
		other := errors.New("boom")
		err := RetryOnConflict(errConflict, func() error {
			calls++
			return other
		})
		assert.Equal(t, other, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Gives up", func(t *testing.T) {
		calls := 0
		err := RetryOnConflict(errConflict, func() error {
			calls++
			return errConflict
		})
		assert.ErrorIs(t, err, errConflict)
		assert.Equal(t, maxConflictAttempts, calls)
	})
}
