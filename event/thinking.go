package event

// ThinkingStart opens a reasoning phase. Thinking text messages may only
// occur inside one.
type ThinkingStart struct {
	Base
	Title string `json:"title,omitempty"`
}

// NewThinkingStart creates a THINKING_START event.
func NewThinkingStart() *ThinkingStart {
	return &ThinkingStart{Base: Base{EventType: TypeThinkingStart}}
}

// ThinkingEnd closes a reasoning phase.
type ThinkingEnd struct {
	Base
}

// NewThinkingEnd creates a THINKING_END event.
func NewThinkingEnd() *ThinkingEnd {
	return &ThinkingEnd{Base: Base{EventType: TypeThinkingEnd}}
}

// ThinkingTextMessageStart opens a streaming thinking message.
type ThinkingTextMessageStart struct {
	Base
}

// NewThinkingTextMessageStart creates a THINKING_TEXT_MESSAGE_START event.
func NewThinkingTextMessageStart() *ThinkingTextMessageStart {
	return &ThinkingTextMessageStart{Base: Base{EventType: TypeThinkingTextMessageStart}}
}

// ThinkingTextMessageContent carries one delta of a thinking message.
type ThinkingTextMessageContent struct {
	Base
	Delta string `json:"delta"`
}

// NewThinkingTextMessageContent creates a THINKING_TEXT_MESSAGE_CONTENT event.
func NewThinkingTextMessageContent(delta string) *ThinkingTextMessageContent {
	return &ThinkingTextMessageContent{Base: Base{EventType: TypeThinkingTextMessageContent}, Delta: delta}
}

// ThinkingTextMessageEnd closes a streaming thinking message.
type ThinkingTextMessageEnd struct {
	Base
}

// NewThinkingTextMessageEnd creates a THINKING_TEXT_MESSAGE_END event.
func NewThinkingTextMessageEnd() *ThinkingTextMessageEnd {
	return &ThinkingTextMessageEnd{Base: Base{EventType: TypeThinkingTextMessageEnd}}
}
