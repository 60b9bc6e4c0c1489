package tool

import (
	"context"
	"errors"
	"net"

	agui "github.com/spetersoncode/agui"
)

// Classify attaches a category to an uncategorized execution error based
// on its kind. Errors that already carry a category pass through
// unchanged; everything unrecognized stays unclassified and is handled as
// unknown by the retry policy.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var ce agui.CategorizedError
	if errors.As(err, &ce) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return agui.NewTransientError("execution deadline exceeded", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return agui.NewTransientError("network timeout", err)
		}
		return agui.NewTransientError("network error", err)
	}

	return err
}
