package tool

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy selects how retry delays grow with the attempt number.
type BackoffStrategy int

const (
	// BackoffFixed waits BaseDelay between every attempt.
	BackoffFixed BackoffStrategy = iota
	// BackoffLinear waits BaseDelay multiplied by the attempt number.
	BackoffLinear
	// BackoffExponential doubles the delay each attempt, capped at MaxDelay.
	BackoffExponential
	// BackoffExponentialJitter is exponential plus up to Jitter extra,
	// capped at MaxDelay.
	BackoffExponentialJitter
)

// Backoff computes the delay before a retry attempt.
type Backoff struct {
	Strategy BackoffStrategy

	// BaseDelay is the delay before the first retry (default: 1s).
	BaseDelay time.Duration

	// MaxDelay caps the computed delay (default: 30s).
	MaxDelay time.Duration

	// Jitter is the maximum random fraction added by
	// BackoffExponentialJitter (default: 0.1 = 10%).
	Jitter float64
}

// DefaultBackoff returns the default backoff:
// exponential with 10% jitter, 1 second base, 30 second cap.
func DefaultBackoff() Backoff {
	return Backoff{
		Strategy:  BackoffExponentialJitter,
		BaseDelay: 1 * time.Second,
		MaxDelay:  30 * time.Second,
		Jitter:    0.1,
	}
}

// Delay calculates the wait before the given retry attempt (1-indexed).
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.BaseDelay
	if base <= 0 {
		base = 1 * time.Second
	}
	maxDelay := b.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	var delay float64
	switch b.Strategy {
	case BackoffFixed:
		delay = float64(base)
	case BackoffLinear:
		delay = float64(base) * float64(attempt)
	case BackoffExponential:
		delay = float64(base) * math.Pow(2, float64(attempt-1))
	case BackoffExponentialJitter:
		delay = float64(base) * math.Pow(2, float64(attempt-1))
		jitter := b.Jitter
		if jitter <= 0 {
			jitter = 0.1
		}
		delay *= 1 + rand.Float64()*jitter
	}

	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}
	return time.Duration(delay)
}
