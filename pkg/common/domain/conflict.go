package domain

import "github.com/pkg/errors"

const maxConflictAttempts = 5

// RetryOnConflict reruns a read-modify-write cycle while it fails with the
// given optimistic lock error.
func RetryOnConflict(conflict error, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxConflictAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, conflict) {
			return err
		}
	}
	return err
}
