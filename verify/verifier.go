// Package verify enforces the AG-UI protocol's event-ordering invariants.
//
// A Verifier sits between the transport and the state reconciler. It is a
// pure filter: events are validated against the current run state and
// either forwarded unchanged or rejected with a ProtocolViolation. A
// violation always indicates a malformed backend and is fatal to the run.
package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spetersoncode/agui/event"
)

// ProtocolViolation reports an event that is invalid in the stream's
// current state, naming the offending event type and the reason.
type ProtocolViolation struct {
	EventType event.Type
	Reason    string
}

// Error formats the violation.
func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("verify: invalid %s: %s", e.EventType, e.Reason)
}

type runState int

const (
	// stateIdle: no run active; only RUN_STARTED is acceptable.
	stateIdle runState = iota
	// stateRunning: a run is in progress.
	stateRunning
	// stateErrored: the current run ended with RUN_ERROR. No further
	// events belong to it; a new run may still start on the same stream.
	stateErrored
)

// Verifier tracks the in-flight state of the run currently in progress:
// open text-message IDs, open tool-call IDs, active step names, and the
// thinking phase. Multiple text messages and tool calls may be in flight
// simultaneously; only per-ID sequencing is enforced.
//
// A Verifier is not safe for concurrent use; each stream needs its own.
type Verifier struct {
	state           runState
	activeMessages  map[string]struct{}
	activeToolCalls map[string]struct{}
	activeSteps     map[string]struct{}
	thinking        bool
	thinkingMessage bool
}

// New creates a Verifier in the Idle state.
func New() *Verifier {
	return &Verifier{
		activeMessages:  make(map[string]struct{}),
		activeToolCalls: make(map[string]struct{}),
		activeSteps:     make(map[string]struct{}),
	}
}

// Verify validates ev against the current state and advances the state
// machine. It returns a *ProtocolViolation when the event is invalid; the
// event itself is never mutated.
func (v *Verifier) Verify(ev event.Event) error {
	t := ev.Type()

	switch v.state {
	case stateIdle:
		if t != event.TypeRunStarted {
			return &ProtocolViolation{EventType: t, Reason: "no run is active; a run must begin with RUN_STARTED"}
		}
	case stateErrored:
		if t != event.TypeRunStarted {
			return &ProtocolViolation{EventType: t, Reason: "the run has already errored with RUN_ERROR; no further events can be sent in this run"}
		}
	}

	switch e := ev.(type) {
	case *event.RunStarted:
		if v.state == stateRunning {
			return &ProtocolViolation{EventType: t, Reason: "a run is already in progress; finish it with RUN_FINISHED or RUN_ERROR first"}
		}
		v.reset()
		v.state = stateRunning

	case *event.RunFinished:
		if pending := v.pending(); pending != "" {
			return &ProtocolViolation{EventType: t, Reason: "run cannot finish while still active: " + pending}
		}
		v.state = stateIdle

	case *event.RunError:
		v.state = stateErrored

	case *event.StepStarted:
		if _, ok := v.activeSteps[e.StepName]; ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("step %q is already active", e.StepName)}
		}
		v.activeSteps[e.StepName] = struct{}{}

	case *event.StepFinished:
		if _, ok := v.activeSteps[e.StepName]; !ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("step %q was not started", e.StepName)}
		}
		delete(v.activeSteps, e.StepName)

	case *event.TextMessageStart:
		if _, ok := v.activeMessages[e.MessageID]; ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("message %q is already in progress; complete it with TEXT_MESSAGE_END first", e.MessageID)}
		}
		v.activeMessages[e.MessageID] = struct{}{}

	case *event.TextMessageContent:
		if _, ok := v.activeMessages[e.MessageID]; !ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("no active message %q; send TEXT_MESSAGE_START first", e.MessageID)}
		}

	case *event.TextMessageEnd:
		if _, ok := v.activeMessages[e.MessageID]; !ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("no active message %q; send TEXT_MESSAGE_START first", e.MessageID)}
		}
		delete(v.activeMessages, e.MessageID)

	case *event.ToolCallStart:
		if _, ok := v.activeToolCalls[e.ToolCallID]; ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("tool call %q is already in progress; complete it with TOOL_CALL_END first", e.ToolCallID)}
		}
		v.activeToolCalls[e.ToolCallID] = struct{}{}

	case *event.ToolCallArgs:
		if _, ok := v.activeToolCalls[e.ToolCallID]; !ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("no active tool call %q; send TOOL_CALL_START first", e.ToolCallID)}
		}

	case *event.ToolCallEnd:
		if _, ok := v.activeToolCalls[e.ToolCallID]; !ok {
			return &ProtocolViolation{EventType: t, Reason: fmt.Sprintf("no active tool call %q; send TOOL_CALL_START first", e.ToolCallID)}
		}
		delete(v.activeToolCalls, e.ToolCallID)

	case *event.ThinkingStart:
		if v.thinking {
			return &ProtocolViolation{EventType: t, Reason: "a thinking step is already in progress; end it with THINKING_END first"}
		}
		v.thinking = true

	case *event.ThinkingEnd:
		if !v.thinking {
			return &ProtocolViolation{EventType: t, Reason: "no active thinking step; send THINKING_START first"}
		}
		v.thinking = false
		v.thinkingMessage = false

	case *event.ThinkingTextMessageStart:
		if !v.thinking {
			return &ProtocolViolation{EventType: t, Reason: "no active thinking step; send THINKING_START first"}
		}
		if v.thinkingMessage {
			return &ProtocolViolation{EventType: t, Reason: "a thinking message is already in progress; complete it with THINKING_TEXT_MESSAGE_END first"}
		}
		v.thinkingMessage = true

	case *event.ThinkingTextMessageContent:
		if !v.thinkingMessage {
			return &ProtocolViolation{EventType: t, Reason: "no active thinking message; send THINKING_TEXT_MESSAGE_START first"}
		}

	case *event.ThinkingTextMessageEnd:
		if !v.thinkingMessage {
			return &ProtocolViolation{EventType: t, Reason: "no active thinking message; send THINKING_TEXT_MESSAGE_START first"}
		}
		v.thinkingMessage = false

	case *event.TextMessageChunk, *event.ToolCallChunk, *event.ToolCallResult,
		*event.StateSnapshot, *event.StateDelta, *event.MessagesSnapshot,
		*event.Custom, *event.Raw:
		// Valid any time a run is active.
	}

	return nil
}

// pending describes everything that still blocks RUN_FINISHED, or "" when
// the run may finish.
func (v *Verifier) pending() string {
	var parts []string
	if ids := sortedKeys(v.activeMessages); len(ids) > 0 {
		parts = append(parts, "messages ["+strings.Join(ids, ", ")+"]")
	}
	if ids := sortedKeys(v.activeToolCalls); len(ids) > 0 {
		parts = append(parts, "tool calls ["+strings.Join(ids, ", ")+"]")
	}
	if names := sortedKeys(v.activeSteps); len(names) > 0 {
		parts = append(parts, "steps ["+strings.Join(names, ", ")+"]")
	}
	return strings.Join(parts, ", ")
}

// reset clears per-run tracking. IDs may be reused across runs.
func (v *Verifier) reset() {
	v.activeMessages = make(map[string]struct{})
	v.activeToolCalls = make(map[string]struct{})
	v.activeSteps = make(map[string]struct{})
	v.thinking = false
	v.thinkingMessage = false
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
