// Package reconcile folds a verified AG-UI event stream into conversation
// messages and an opaque JSON application state.
//
// The Reconciler owns a mutable accumulator (the run's message list plus
// state value) and exposes it only as immutable copies, one per event that
// changes observable state. Consumers typically keep just the latest
// snapshot and bind their UI to it.
package reconcile

import (
	"encoding/json"
	"fmt"
	"log/slog"

	jsonpatch "github.com/evanphx/json-patch/v5"

	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/event"
)

// Snapshot is an immutable view of the accumulator. Mutating a Snapshot
// never affects the reconciler.
type Snapshot struct {
	Messages []agui.Message
	State    agui.State
}

// StatePatchError reports a JSON Patch that could not be applied. The
// state is left unchanged and the run continues; the error is surfaced
// only through StateHooks.OnStateError.
type StatePatchError struct {
	Patch []event.PatchOperation
	Cause error
}

// Error formats the patch failure.
func (e *StatePatchError) Error() string {
	return fmt.Sprintf("reconcile: state patch failed: %v", e.Cause)
}

// Unwrap returns the underlying patch error.
func (e *StatePatchError) Unwrap() error { return e.Cause }

// Reconciler folds events into the run's (messages, state) tuple.
//
// A Reconciler is not safe for concurrent use; it is driven by the single
// pipeline goroutine that consumes verified events.
type Reconciler struct {
	messages []agui.Message
	state    agui.State
	rules    []PredictiveStateRule
	hooks    StateHooks
	logger   *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithHooks installs state-change hooks.
func WithHooks(hooks StateHooks) Option {
	return func(r *Reconciler) { r.hooks = hooks }
}

// WithLogger sets the logger used for recovered errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) { r.logger = logger }
}

// New creates a Reconciler seeded with the run's initial messages and
// state. The inputs are copied; the caller's slices are never mutated.
func New(messages []agui.Message, state agui.State, opts ...Option) *Reconciler {
	r := &Reconciler{
		messages: agui.CloneMessages(messages),
		state:    cloneState(state),
		logger:   slog.Default(),
	}
	if r.state == nil {
		r.state = agui.State(`{}`)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns an immutable copy of the current accumulator.
func (r *Reconciler) Snapshot() Snapshot {
	return Snapshot{Messages: agui.CloneMessages(r.messages), State: cloneState(r.state)}
}

// Apply folds one event into the accumulator. It returns a fresh Snapshot
// and true when the event changed observable state, and ok=false when the
// event has no state effect (the returned Snapshot is then zero).
func (r *Reconciler) Apply(ev event.Event) (Snapshot, bool) {
	switch e := ev.(type) {
	case *event.TextMessageStart:
		role := agui.Role(e.Role)
		if role == "" {
			role = agui.RoleAssistant
		}
		empty := ""
		r.messages = append(r.messages, agui.Message{ID: e.MessageID, Role: role, Content: &empty})
		return r.emit()

	case *event.TextMessageContent:
		if last := r.last(); last != nil && last.ID == e.MessageID {
			appendContent(last, e.Delta)
			return r.emit()
		}
		// Delta for a message that is no longer last. Already validated
		// upstream, so drop it rather than guessing a target.
		return Snapshot{}, false

	case *event.TextMessageChunk:
		last := r.last()
		if last != nil && last.Role == agui.RoleAssistant && (e.MessageID == "" || last.ID == e.MessageID) {
			appendContent(last, e.Delta)
		} else {
			id := e.MessageID
			if id == "" {
				id = agui.GenerateMessageID()
			}
			role := agui.Role(e.Role)
			if role == "" {
				role = agui.RoleAssistant
			}
			delta := e.Delta
			r.messages = append(r.messages, agui.Message{ID: id, Role: role, Content: &delta})
		}
		return r.emit()

	case *event.ToolCallStart:
		r.startToolCall(e.ToolCallID, e.ToolCallName, e.ParentMessageID, "")
		return r.emit()

	case *event.ToolCallArgs:
		if tc := r.lastToolCall(); tc != nil && tc.ID == e.ToolCallID {
			tc.Function.Arguments += e.Delta
			r.applyPredictions(tc)
			return r.emit()
		}
		return Snapshot{}, false

	case *event.ToolCallChunk:
		tc := r.lastToolCall()
		if tc != nil && (e.ToolCallID == "" || tc.ID == e.ToolCallID) {
			tc.Function.Arguments += e.Delta
		} else {
			id := e.ToolCallID
			if id == "" {
				id = agui.GenerateToolCallID()
			}
			r.startToolCall(id, e.ToolCallName, e.ParentMessageID, e.Delta)
			tc = r.lastToolCall()
		}
		r.applyPredictions(tc)
		return r.emit()

	case *event.ToolCallResult:
		msg := agui.Message{ID: e.MessageID, Role: agui.RoleTool, Content: &e.Content, ToolCallID: &e.ToolCallID}
		if name := r.toolCallName(e.ToolCallID); name != "" {
			msg.Name = &name
		}
		r.messages = append(r.messages, msg)
		return r.emit()

	case *event.StateSnapshot:
		r.state = cloneState(agui.State(e.Snapshot))
		r.hooks.stateSnapshot(cloneState(r.state))
		return r.emit()

	case *event.StateDelta:
		if err := r.applyPatch(e.Delta); err != nil {
			spErr := &StatePatchError{Patch: e.Delta, Cause: err}
			r.logger.Warn("state patch failed, state unchanged", "error", err)
			r.hooks.stateError(spErr, e.Delta)
			return Snapshot{}, false
		}
		r.hooks.stateDelta(e.Delta)
		return r.emit()

	case *event.MessagesSnapshot:
		r.messages = agui.CloneMessages(e.Messages)
		return r.emit()

	case *event.Custom:
		if e.Name != PredictStateName {
			return Snapshot{}, false
		}
		rules, err := parseRules(e.Value)
		if err != nil {
			r.logger.Warn("invalid PredictState rules, keeping current set", "error", err)
			return Snapshot{}, false
		}
		r.rules = rules
		return Snapshot{}, false

	case *event.StepFinished:
		r.rules = nil
		return Snapshot{}, false

	case *event.RunFinished, *event.RunError:
		r.rules = nil
		return Snapshot{}, false
	}

	return Snapshot{}, false
}

// startToolCall appends a new tool call, attaching it to the last message
// when that message is the assistant message named by parentMessageID, and
// otherwise opening a fresh assistant message to hold it.
func (r *Reconciler) startToolCall(toolCallID, toolCallName string, parentMessageID *string, arguments string) {
	tc := agui.ToolCall{
		ID:       toolCallID,
		Type:     agui.ToolCallTypeFunction,
		Function: agui.FunctionCall{Name: toolCallName, Arguments: arguments},
	}
	last := r.last()
	if last != nil && last.Role == agui.RoleAssistant && parentMessageID != nil && last.ID == *parentMessageID {
		last.ToolCalls = append(last.ToolCalls, tc)
		return
	}
	id := toolCallID
	if parentMessageID != nil {
		id = *parentMessageID
	}
	r.messages = append(r.messages, agui.Message{ID: id, Role: agui.RoleAssistant, ToolCalls: []agui.ToolCall{tc}})
}

// applyPredictions writes optimistic state for every installed rule that
// matches the tool call, once its accumulated arguments parse as JSON.
// Incomplete arguments and failed writes are skipped silently; the next
// delta retries.
func (r *Reconciler) applyPredictions(tc *agui.ToolCall) {
	if tc == nil || len(r.rules) == 0 {
		return
	}
	for _, rule := range r.rules {
		if rule.Tool != tc.Function.Name {
			continue
		}
		value, ok := predictedValue(rule, tc.Function.Arguments)
		if !ok {
			continue
		}
		op := event.PatchOperation{Op: "add", Path: rule.pointer(), Value: value}
		if err := r.applyPatch([]event.PatchOperation{op}); err != nil {
			r.logger.Debug("predictive state write skipped", "path", rule.pointer(), "error", err)
		}
	}
}

// applyPatch applies an RFC 6902 patch to the state in place. On error the
// state is untouched.
func (r *Reconciler) applyPatch(ops []event.PatchOperation) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return err
	}
	next, err := patch.Apply(r.state)
	if err != nil {
		return err
	}
	r.state = agui.State(next)
	return nil
}

func (r *Reconciler) emit() (Snapshot, bool) {
	return r.Snapshot(), true
}

// appendContent extends a message's text, materializing Content for
// messages created without any.
func appendContent(m *agui.Message, delta string) {
	if m.Content == nil {
		m.Content = new(string)
	}
	*m.Content += delta
}

// last returns a pointer into the accumulator's final message, or nil.
func (r *Reconciler) last() *agui.Message {
	if len(r.messages) == 0 {
		return nil
	}
	return &r.messages[len(r.messages)-1]
}

// lastToolCall returns the last tool call of the last message, or nil.
func (r *Reconciler) lastToolCall() *agui.ToolCall {
	last := r.last()
	if last == nil || len(last.ToolCalls) == 0 {
		return nil
	}
	return &last.ToolCalls[len(last.ToolCalls)-1]
}

// toolCallName finds the declared name of a tool call by scanning the
// accumulated messages newest-first.
func (r *Reconciler) toolCallName(toolCallID string) string {
	for i := len(r.messages) - 1; i >= 0; i-- {
		for _, tc := range r.messages[i].ToolCalls {
			if tc.ID == toolCallID {
				return tc.Function.Name
			}
		}
	}
	return ""
}

func cloneState(state agui.State) agui.State {
	if state == nil {
		return nil
	}
	out := make(agui.State, len(state))
	copy(out, state)
	return out
}
