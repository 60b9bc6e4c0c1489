package tool

import "time"

// BreakerState is the current state of a tool's circuit breaker.
type BreakerState int

const (
	// BreakerClosed admits all calls.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects all calls until the recovery timeout elapses.
	BreakerOpen
	// BreakerHalfOpen admits calls while probing for recovery.
	BreakerHalfOpen
)

// String returns the state name.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig tunes the per-tool circuit breakers.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the breaker (default: 5).
	FailureThreshold int

	// RecoveryTimeout is how long the breaker stays open before the next
	// call probes for recovery (default: 60s).
	RecoveryTimeout time.Duration

	// SuccessThreshold is the number of consecutive half-open successes
	// that closes the breaker again (default: 2).
	SuccessThreshold int
}

// DefaultBreakerConfig returns the default breaker tuning:
// open after 5 consecutive failures, probe after 60 seconds, close after
// 2 consecutive successes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  60 * time.Second,
		SuccessThreshold: 2,
	}
}

// breaker guards one tool name. There is no background timer: the
// open-to-half-open transition happens lazily on the next allow query.
// Callers synchronize access; the engine holds its mutex around every
// method.
type breaker struct {
	cfg   BreakerConfig
	now   func() time.Time
	state BreakerState

	consecutiveFailures int
	recoverySuccesses   int
	lastFailure         time.Time
}

func newBreaker(cfg BreakerConfig, now func() time.Time) *breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = 60 * time.Second
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	return &breaker{cfg: cfg, now: now}
}

// allow reports whether a call may proceed, transitioning Open to
// HalfOpen once the recovery timeout has elapsed since the last failure.
func (b *breaker) allow() bool {
	if b.view() == BreakerHalfOpen && b.state == BreakerOpen {
		b.state = BreakerHalfOpen
		b.recoverySuccesses = 0
	}
	return b.state != BreakerOpen
}

// view returns the state as of now without committing the lazy
// open-to-half-open transition; that happens only on allow.
func (b *breaker) view() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.lastFailure) >= b.cfg.RecoveryTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *breaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.consecutiveFailures = 0
	case BreakerHalfOpen:
		b.recoverySuccesses++
		if b.recoverySuccesses >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
			b.consecutiveFailures = 0
			b.recoverySuccesses = 0
		}
	}
}

func (b *breaker) recordFailure() {
	b.lastFailure = b.now()
	switch b.state {
	case BreakerClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.state = BreakerOpen
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.recoverySuccesses = 0
	}
}
