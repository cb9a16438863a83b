package pathstore

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// MaxRetries bounds the extra attempts made after a transient failure.
const MaxRetries = 3

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// retryableStatus reports whether the server signalled a transient failure.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// withRetry runs send until it returns a non-transient response, the context
// ends, or MaxRetries is exhausted. Every call the client makes is idempotent.
func (c *Client) withRetry(ctx context.Context, send func() (*http.Response, error)) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := send()
		transient := err != nil || retryableStatus(resp.StatusCode)
		if !transient || attempt >= MaxRetries {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			if err == nil {
				err = fmt.Errorf("status %d", resp.StatusCode)
			}
			return nil, fmt.Errorf("%w (gave up: %v)", err, ctx.Err())
		case <-time.After(c.backoff(attempt)):
		}
	}
}
