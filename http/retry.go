package http

import (
	"context"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// defaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func defaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry runs fetch with backoff, retrying only transient
// failures (EUNAVAILABLE). Not-found and invalid-input errors are
// returned immediately since retrying cannot change them.
func fetchWithRetry(ctx context.Context, delays []time.Duration, fetch func(ctx context.Context) (string, error)) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if wikiwalk.ErrorCode(err) != wikiwalk.EUNAVAILABLE {
			return "", err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
