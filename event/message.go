package event

// TextMessageStart opens a streaming text message. Content deltas for the
// same message ID follow until TextMessageEnd.
type TextMessageStart struct {
	Base
	MessageID string `json:"messageId"`
	Role      string `json:"role,omitempty"`
}

// NewTextMessageStart creates a TEXT_MESSAGE_START event with the
// assistant role.
func NewTextMessageStart(messageID string) *TextMessageStart {
	return &TextMessageStart{Base: Base{EventType: TypeTextMessageStart}, MessageID: messageID, Role: "assistant"}
}

// TextMessageContent carries one content delta for an open text message.
type TextMessageContent struct {
	Base
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
}

// NewTextMessageContent creates a TEXT_MESSAGE_CONTENT event.
func NewTextMessageContent(messageID, delta string) *TextMessageContent {
	return &TextMessageContent{Base: Base{EventType: TypeTextMessageContent}, MessageID: messageID, Delta: delta}
}

// TextMessageEnd closes a streaming text message.
type TextMessageEnd struct {
	Base
	MessageID string `json:"messageId"`
}

// NewTextMessageEnd creates a TEXT_MESSAGE_END event.
func NewTextMessageEnd(messageID string) *TextMessageEnd {
	return &TextMessageEnd{Base: Base{EventType: TypeTextMessageEnd}, MessageID: messageID}
}

// TextMessageChunk is a convenience variant equivalent to Start+Content+End
// collapsed into one event. Consecutive chunks sharing a message ID extend
// the same message.
type TextMessageChunk struct {
	Base
	MessageID string `json:"messageId,omitempty"`
	Role      string `json:"role,omitempty"`
	Delta     string `json:"delta,omitempty"`
}

// NewTextMessageChunk creates a TEXT_MESSAGE_CHUNK event.
func NewTextMessageChunk(messageID, delta string) *TextMessageChunk {
	return &TextMessageChunk{Base: Base{EventType: TypeTextMessageChunk}, MessageID: messageID, Delta: delta}
}
