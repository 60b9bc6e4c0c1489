package tool

import (
	"errors"

	agui "github.com/spetersoncode/agui"
)

// RetryPolicy decides whether a failed execution attempt is retried and
// how long to wait before the retry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt
	// (default: 3).
	MaxRetries int

	// RetryResource retries resource errors (default: true).
	RetryResource bool

	// RetryUnknown retries unclassified errors (default: false).
	RetryUnknown bool

	Backoff Backoff
}

// DefaultRetryPolicy returns the default policy: 3 retries, resource
// errors retried, unknown errors not, exponential-jitter backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		RetryResource: true,
		RetryUnknown:  false,
		Backoff:       DefaultBackoff(),
	}
}

// ShouldRetry reports whether the error warrants another attempt, given
// the number of retries already performed.
//
// Configuration, user input, and security errors are never retried:
// re-running an identical call cannot fix them. An open circuit breaker is
// never retried either; the breaker exists to stop exactly that traffic.
func (p RetryPolicy) ShouldRetry(err error, retries int) bool {
	if retries >= p.MaxRetries {
		return false
	}

	var open *ErrCircuitOpen
	if errors.As(err, &open) {
		return false
	}

	switch agui.CategoryOf(err) {
	case agui.ErrorConfiguration, agui.ErrorUserInput, agui.ErrorSecurity:
		return false
	case agui.ErrorTransient:
		return true
	case agui.ErrorResource:
		return p.RetryResource
	default:
		return p.RetryUnknown
	}
}
