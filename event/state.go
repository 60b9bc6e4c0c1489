package event

import (
	"encoding/json"

	agui "github.com/spetersoncode/agui"
)

// StateSnapshot replaces the run's application state wholesale.
type StateSnapshot struct {
	Base
	Snapshot json.RawMessage `json:"snapshot"`
}

// NewStateSnapshot creates a STATE_SNAPSHOT event.
func NewStateSnapshot(snapshot json.RawMessage) *StateSnapshot {
	return &StateSnapshot{Base: Base{EventType: TypeStateSnapshot}, Snapshot: snapshot}
}

// StateDelta mutates the run's application state with an RFC 6902 patch.
type StateDelta struct {
	Base
	Delta []PatchOperation `json:"delta"`
}

// NewStateDelta creates a STATE_DELTA event.
func NewStateDelta(delta []PatchOperation) *StateDelta {
	return &StateDelta{Base: Base{EventType: TypeStateDelta}, Delta: delta}
}

// MessagesSnapshot replaces the run's message list wholesale.
type MessagesSnapshot struct {
	Base
	Messages []agui.Message `json:"messages"`
}

// NewMessagesSnapshot creates a MESSAGES_SNAPSHOT event.
func NewMessagesSnapshot(messages []agui.Message) *MessagesSnapshot {
	return &MessagesSnapshot{Base: Base{EventType: TypeMessagesSnapshot}, Messages: messages}
}
