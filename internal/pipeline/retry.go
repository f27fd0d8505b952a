package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/Lexamplify/lexamplify/internal/store"
)

// IsRetryable checks if a persistence error is worth retrying. Cancellation
// and not-found are terminal; anything else is assumed transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, store.ErrNotFound)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
