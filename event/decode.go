package event

import (
	"encoding/json"
	"fmt"
)

// ErrUnknownType is returned by Decode for wire types outside the closed
// event union.
type ErrUnknownType struct {
	Type string
}

// Error returns a message naming the unrecognized wire type.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("event: unknown event type %q", e.Type)
}

// Decode parses one JSON frame into its concrete event type, dispatching
// on the "type" field. Unknown types fail with ErrUnknownType rather than
// being silently dropped.
func Decode(data []byte) (Event, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("event: invalid frame: %w", err)
	}

	ev := newByType(Type(probe.Type))
	if ev == nil {
		return nil, &ErrUnknownType{Type: probe.Type}
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("event: decode %s: %w", probe.Type, err)
	}
	return ev, nil
}

// newByType returns a zero value of the concrete type for t, or nil when t
// is not part of the union.
func newByType(t Type) Event {
	switch t {
	case TypeRunStarted:
		return &RunStarted{}
	case TypeRunFinished:
		return &RunFinished{}
	case TypeRunError:
		return &RunError{}
	case TypeStepStarted:
		return &StepStarted{}
	case TypeStepFinished:
		return &StepFinished{}
	case TypeTextMessageStart:
		return &TextMessageStart{}
	case TypeTextMessageContent:
		return &TextMessageContent{}
	case TypeTextMessageEnd:
		return &TextMessageEnd{}
	case TypeTextMessageChunk:
		return &TextMessageChunk{}
	case TypeToolCallStart:
		return &ToolCallStart{}
	case TypeToolCallArgs:
		return &ToolCallArgs{}
	case TypeToolCallEnd:
		return &ToolCallEnd{}
	case TypeToolCallChunk:
		return &ToolCallChunk{}
	case TypeToolCallResult:
		return &ToolCallResult{}
	case TypeStateSnapshot:
		return &StateSnapshot{}
	case TypeStateDelta:
		return &StateDelta{}
	case TypeMessagesSnapshot:
		return &MessagesSnapshot{}
	case TypeCustom:
		return &Custom{}
	case TypeRaw:
		return &Raw{}
	case TypeThinkingStart:
		return &ThinkingStart{}
	case TypeThinkingEnd:
		return &ThinkingEnd{}
	case TypeThinkingTextMessageStart:
		return &ThinkingTextMessageStart{}
	case TypeThinkingTextMessageContent:
		return &ThinkingTextMessageContent{}
	case TypeThinkingTextMessageEnd:
		return &ThinkingTextMessageEnd{}
	}
	return nil
}
