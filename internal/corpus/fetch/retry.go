package fetch

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"math/big"
	"net"
	"time"
)

// retryPolicy implements jittered exponential backoff for corpus fetches.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

func newRetryPolicy(maxAttempts int) *retryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &retryPolicy{
		maxAttempts: maxAttempts,
		baseDelay:   250 * time.Millisecond,
		maxDelay:    5 * time.Second,
	}
}

// shouldRetry decides whether the error is retryable. Context cancellation is
// terminal: an abandoned fetch is a failure, not a retry candidate.
func (p *retryPolicy) shouldRetry(err error, attempt int) bool {
	if err == nil {
		return false
	}
	if attempt >= p.maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return true
}

// backoff returns the wait duration before the next attempt.
func (p *retryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.baseDelay) * math.Pow(2, float64(attempt))
	if delay > float64(p.maxDelay) {
		delay = float64(p.maxDelay)
	}
	jitter := p.randomJitter(time.Duration(delay) / 2)
	return time.Duration(delay/2) + jitter
}

func (p *retryPolicy) randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	bound := big.NewInt(int64(limit))
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
