package tool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	agui "github.com/spetersoncode/agui"
)

// DefaultHistoryLimit bounds the per-tool ring of retained execution attempts.
const DefaultHistoryLimit = 100

// Stats holds running execution totals for one tool name.
type Stats struct {
	Executions    int64
	Successes     int64
	Failures      int64
	TotalDuration time.Duration
}

// AverageDuration returns the mean execution latency.
func (s Stats) AverageDuration() time.Duration {
	if s.Executions == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Executions)
}

// ExecutionAttempt records one failed attempt for diagnostics.
type ExecutionAttempt struct {
	ToolCall  agui.ToolCall
	Err       error
	Attempt   int
	Timestamp time.Time
}

// Engine executes tool calls against a Registry, adding per-attempt
// timeouts, failure classification, retries with backoff, and a circuit
// breaker per tool name.
//
// An Engine is safe for concurrent use: multiple tool calls may execute
// simultaneously, and the stats, breaker, and attempt-history maps are
// mutex-guarded.
type Engine struct {
	registry *Registry
	policy   RetryPolicy
	breaker  BreakerConfig
	history  int
	logger   *slog.Logger
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	stats    map[string]*Stats
	breakers map[string]*breaker
	attempts map[string][]ExecutionAttempt
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) EngineOption {
	return func(e *Engine) { e.policy = p }
}

// WithBreakerConfig overrides the default circuit breaker tuning.
func WithBreakerConfig(cfg BreakerConfig) EngineOption {
	return func(e *Engine) { e.breaker = cfg }
}

// WithHistoryLimit overrides the attempt-history ring size.
func WithHistoryLimit(n int) EngineOption {
	return func(e *Engine) { e.history = n }
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an Engine over the given registry with default
// policy, breaker tuning, and history limit.
func NewEngine(registry *Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry,
		policy:   DefaultRetryPolicy(),
		breaker:  DefaultBreakerConfig(),
		history:  DefaultHistoryLimit,
		logger:   slog.Default(),
		now:      time.Now,
		sleep:    sleepContext,
		stats:    make(map[string]*Stats),
		breakers: make(map[string]*breaker),
		attempts: make(map[string][]ExecutionAttempt),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's underlying registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Execute runs the tool call named by call.Function.Name through the
// full pipeline: lookup, canExecute, validation, circuit breaker,
// per-attempt timeout, classification, and retries with backoff. It
// returns the tool's result content, or the final error once retries are
// exhausted; intermediate failures are contained.
func (e *Engine) Execute(ctx context.Context, call agui.ToolCall) (string, error) {
	name := call.Function.Name
	rt, ok := e.registry.lookup(name)
	if !ok {
		return "", &ErrToolNotFound{Name: name}
	}

	if rt.canExecute != nil && !rt.canExecute(call) {
		return "", &ErrToolValidation{Name: name, Reason: "execution not permitted for this call"}
	}
	if rt.validate != nil {
		if err := rt.validate(call); err != nil {
			return "", &ErrToolValidation{Name: name, Reason: err.Error()}
		}
	}

	var lastErr error
	for retries := 0; ; retries++ {
		if !e.allowCall(name) {
			err := &ErrCircuitOpen{Name: name}
			e.logger.Warn("circuit open, call rejected", "tool", name)
			return "", err
		}

		start := e.now()
		result, err := e.attempt(ctx, rt, call)
		elapsed := e.now().Sub(start)
		if err == nil {
			e.recordSuccess(name, elapsed)
			return result, nil
		}

		err = Classify(err)
		lastErr = err
		e.recordFailure(name, call, err, retries+1, elapsed)

		if !e.policy.ShouldRetry(err, retries) {
			break
		}

		delay := e.policy.Backoff.Delay(retries + 1)
		e.logger.Debug("retrying tool call",
			"tool", name, "retry", retries+1, "delay", delay, "error", err)
		if err := e.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", &ErrToolExecution{Name: name, Err: lastErr}
}

// attempt runs the handler once, enforcing the tool's max execution time
// even when the handler ignores context cancellation.
func (e *Engine) attempt(ctx context.Context, rt *registeredTool, call agui.ToolCall) (string, error) {
	if rt.maxExecutionTime <= 0 {
		return rt.handler(ctx, call)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, rt.maxExecutionTime)
	defer cancel()

	type outcome struct {
		result string
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := rt.handler(attemptCtx, call)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && attemptCtx.Err() == context.DeadlineExceeded {
			return "", &ErrToolTimeout{Name: rt.tool.Name, Limit: rt.maxExecutionTime}
		}
		return out.result, out.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &ErrToolTimeout{Name: rt.tool.Name, Limit: rt.maxExecutionTime}
	}
}

// Stats returns a copy of the running totals for a tool name.
func (e *Engine) Stats(name string) (Stats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.stats[name]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Attempts returns a copy of the retained failed attempts for a tool name,
// oldest first.
func (e *Engine) Attempts(name string) []ExecutionAttempt {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := e.attempts[name]
	out := make([]ExecutionAttempt, len(history))
	copy(out, history)
	return out
}

// BreakerState returns the current circuit state for a tool name,
// reflecting the lazy open-to-half-open transition without committing
// it. Tools that have never executed report BreakerClosed.
func (e *Engine) BreakerState(name string) BreakerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.breakers[name]
	if !ok {
		return BreakerClosed
	}
	return b.view()
}

func (e *Engine) allowCall(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.breakerFor(name).allow()
}

func (e *Engine) recordSuccess(name string, elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.breakerFor(name).recordSuccess()
	s := e.statsFor(name)
	s.Executions++
	s.Successes++
	s.TotalDuration += elapsed
	delete(e.attempts, name)
}

func (e *Engine) recordFailure(name string, call agui.ToolCall, err error, attempt int, elapsed time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.breakerFor(name).recordFailure()
	s := e.statsFor(name)
	s.Executions++
	s.Failures++
	s.TotalDuration += elapsed

	history := append(e.attempts[name], ExecutionAttempt{
		ToolCall:  call,
		Err:       err,
		Attempt:   attempt,
		Timestamp: e.now(),
	})
	if len(history) > e.history {
		history = history[len(history)-e.history:]
	}
	e.attempts[name] = history
}

// breakerFor returns the breaker for a name, creating it lazily.
// Callers hold e.mu.
func (e *Engine) breakerFor(name string) *breaker {
	b, ok := e.breakers[name]
	if !ok {
		b = newBreaker(e.breaker, e.now)
		e.breakers[name] = b
	}
	return b
}

// statsFor returns the stats for a name, creating them lazily.
// Callers hold e.mu.
func (e *Engine) statsFor(name string) *Stats {
	s, ok := e.stats[name]
	if !ok {
		s = &Stats{}
		e.stats[name] = s
	}
	return s
}

// sleepContext waits for d, aborting early on context cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
