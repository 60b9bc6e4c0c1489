// Package event defines the AG-UI protocol event types: a closed union of
// roughly twenty variants covering run lifecycle, streaming text messages,
// streaming tool calls, state synchronization, and extension events.
//
// Events arrive from the transport as JSON frames and are decoded with
// [Decode]. Every event belongs to exactly one run; sequencing rules are
// enforced downstream by the verify package.
package event

import "encoding/json"

// Type identifies the kind of protocol event. The wire values match the
// AG-UI protocol specification.
type Type string

const (
	TypeRunStarted   Type = "RUN_STARTED"
	TypeRunFinished  Type = "RUN_FINISHED"
	TypeRunError     Type = "RUN_ERROR"
	TypeStepStarted  Type = "STEP_STARTED"
	TypeStepFinished Type = "STEP_FINISHED"

	TypeTextMessageStart   Type = "TEXT_MESSAGE_START"
	TypeTextMessageContent Type = "TEXT_MESSAGE_CONTENT"
	TypeTextMessageEnd     Type = "TEXT_MESSAGE_END"
	TypeTextMessageChunk   Type = "TEXT_MESSAGE_CHUNK"

	TypeToolCallStart  Type = "TOOL_CALL_START"
	TypeToolCallArgs   Type = "TOOL_CALL_ARGS"
	TypeToolCallEnd    Type = "TOOL_CALL_END"
	TypeToolCallChunk  Type = "TOOL_CALL_CHUNK"
	TypeToolCallResult Type = "TOOL_CALL_RESULT"

	TypeStateSnapshot    Type = "STATE_SNAPSHOT"
	TypeStateDelta       Type = "STATE_DELTA"
	TypeMessagesSnapshot Type = "MESSAGES_SNAPSHOT"

	TypeCustom Type = "CUSTOM"
	TypeRaw    Type = "RAW"

	TypeThinkingStart              Type = "THINKING_START"
	TypeThinkingEnd                Type = "THINKING_END"
	TypeThinkingTextMessageStart   Type = "THINKING_TEXT_MESSAGE_START"
	TypeThinkingTextMessageContent Type = "THINKING_TEXT_MESSAGE_CONTENT"
	TypeThinkingTextMessageEnd     Type = "THINKING_TEXT_MESSAGE_END"
)

// Event is the interface implemented by all protocol events. The set of
// implementations is closed: consumers type-switch over the concrete
// pointer types and unknown wire types are rejected at decode time, so a
// default branch is a programming error rather than a silent no-op.
type Event interface {
	// Type returns the event's wire type.
	Type() Type
}

// Base carries the fields shared by every event. Concrete event types
// embed it; the type tag drives JSON decoding.
type Base struct {
	EventType Type `json:"type"`
	// TimestampMS is the optional event timestamp in Unix milliseconds.
	TimestampMS *int64 `json:"timestamp,omitempty"`
}

// Type returns the event's wire type.
func (b Base) Type() Type {
	return b.EventType
}

// PatchOperation is one RFC 6902 JSON Patch operation, as carried by
// StateDelta events.
type PatchOperation struct {
	// Op is one of add, remove, replace, move, copy, test.
	Op string `json:"op"`
	// Path is an RFC 6901 JSON Pointer into the state document.
	Path string `json:"path"`
	// Value is the operand for add, replace, and test operations.
	Value json.RawMessage `json:"value,omitempty"`
	// From is the source path for move and copy operations.
	From string `json:"from,omitempty"`
}
