package client

import (
	"context"
	"fmt"
	"sync"

	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/event"
	"github.com/spetersoncode/agui/reconcile"
	"github.com/spetersoncode/agui/sse"
	"github.com/spetersoncode/agui/verify"
)

// RunFailedError is the terminal failure of a run that the agent ended
// with a RUN_ERROR event.
type RunFailedError struct {
	Message string
	Code    string
}

// Error formats the failure.
func (e *RunFailedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("client: run failed (%s): %s", e.Code, e.Message)
	}
	return "client: run failed: " + e.Message
}

// Run starts one agent run and returns the pipeline's update channel.
//
// The input is prepared (missing IDs generated, nil state replaced) and
// the registry's tool definitions are appended to it before sending, so
// the agent sees the frontend's tools. Run fails immediately when the
// connection cannot be established.
//
// The channel closes when the run completes, fails, or ctx is cancelled.
// A terminal failure is delivered as the final Update's Err field;
// transport and protocol errors end the run, tool failures do not.
func (a *Agent) Run(ctx context.Context, input agui.RunAgentInput) (<-chan Update, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	input = input.Prepare()
	if a.engine != nil {
		if local := a.engine.Registry().Tools(); len(local) > 0 {
			// Copy before appending: the caller's slice may have spare
			// capacity and must never be written through.
			merged := make([]agui.Tool, 0, len(input.Tools)+len(local))
			merged = append(merged, input.Tools...)
			merged = append(merged, local...)
			input.Tools = merged
		}
	}

	frames, errs, err := a.transport.Stream(sse.StreamOptions{Context: ctx, Payload: input})
	if err != nil {
		return nil, err
	}

	updates := make(chan Update, 16)
	go a.pipeline(ctx, input, frames, errs, updates)
	return updates, nil
}

// toolOutcome is one finished local tool execution. Failed executions
// carry the error text as content so the agent can recover on the next
// run instead of the run aborting.
type toolOutcome struct {
	call    agui.ToolCall
	content string
}

// pipeline owns the verifier, the reconciler, and the updates channel for
// one run. Tool calls execute on their own goroutines; their results are
// folded back in here, so the accumulator is only ever touched by this
// goroutine.
func (a *Agent) pipeline(ctx context.Context, input agui.RunAgentInput, frames <-chan sse.Frame, errs <-chan error, updates chan<- Update) {
	defer close(updates)

	verifier := verify.New()
	rec := reconcile.New(input.Messages, input.State,
		reconcile.WithHooks(a.hooks), reconcile.WithLogger(a.logger))

	done := make(chan struct{})
	defer close(done)

	results := make(chan toolOutcome)
	var wg sync.WaitGroup
	pending := make(map[string]*agui.ToolCall)

	emit := func(u Update) bool {
		select {
		case updates <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	applyResult := func(out toolOutcome) bool {
		ev := event.NewToolCallResult(agui.GenerateMessageID(), out.call.ID, out.content)
		snap, _ := rec.Apply(ev)
		return emit(Update{Event: ev, Snapshot: &snap})
	}

	// handleEvent returns a non-nil error when the run must terminate.
	handleEvent := func(ev event.Event) error {
		if err := verifier.Verify(ev); err != nil {
			return err
		}

		switch e := ev.(type) {
		case *event.ToolCallStart:
			pending[e.ToolCallID] = &agui.ToolCall{
				ID:       e.ToolCallID,
				Type:     agui.ToolCallTypeFunction,
				Function: agui.FunctionCall{Name: e.ToolCallName},
			}
		case *event.ToolCallArgs:
			if tc, ok := pending[e.ToolCallID]; ok {
				tc.Function.Arguments += e.Delta
			}
		case *event.ToolCallEnd:
			if tc, ok := pending[e.ToolCallID]; ok {
				delete(pending, e.ToolCallID)
				a.dispatchTool(ctx, *tc, results, done, &wg)
			}
		}

		var snap *reconcile.Snapshot
		if s, ok := rec.Apply(ev); ok {
			snap = &s
		}
		if !emit(Update{Event: ev, Snapshot: snap}) {
			return ctx.Err()
		}

		if e, ok := ev.(*event.RunError); ok {
			return &RunFailedError{Message: e.Message, Code: e.Code}
		}
		return nil
	}

	for frames != nil || errs != nil {
		select {
		case <-ctx.Done():
			return

		case out := <-results:
			if !applyResult(out) {
				return
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			emit(Update{Err: err})
			return

		case frame, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			ev, err := event.Decode(frame.Data)
			if err != nil {
				emit(Update{Err: err})
				return
			}
			if err := handleEvent(ev); err != nil {
				if ctx.Err() == nil {
					emit(Update{Err: err})
				}
				return
			}
		}
	}

	// Stream finished cleanly; fold in the tool executions still running.
	go func() {
		wg.Wait()
		close(results)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case out, ok := <-results:
			if !ok {
				return
			}
			if !applyResult(out) {
				return
			}
		}
	}
}

// dispatchTool starts one local tool execution. Calls naming tools the
// registry does not know are left for whoever else consumes the stream.
func (a *Agent) dispatchTool(ctx context.Context, call agui.ToolCall, results chan<- toolOutcome, done <-chan struct{}, wg *sync.WaitGroup) {
	if a.engine == nil {
		return
	}
	if _, ok := a.engine.Registry().Get(call.Function.Name); !ok {
		a.logger.Debug("skipping unregistered tool call", "tool", call.Function.Name)
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		content, err := a.engine.Execute(ctx, call)
		if err != nil {
			a.logger.Error("tool execution failed",
				"tool", call.Function.Name, "error", err, "report", agui.ShouldReport(err))
			content = err.Error()
		}
		select {
		case results <- toolOutcome{call: call, content: content}:
		case <-done:
		}
	}()
}
