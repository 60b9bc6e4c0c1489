package event

// ToolCallStart opens a streaming tool call. Argument deltas for the same
// call ID follow until ToolCallEnd.
type ToolCallStart struct {
	Base
	ToolCallID   string `json:"toolCallId"`
	ToolCallName string `json:"toolCallName"`
	// ParentMessageID attaches the call to an existing assistant message.
	ParentMessageID *string `json:"parentMessageId,omitempty"`
}

// NewToolCallStart creates a TOOL_CALL_START event.
func NewToolCallStart(toolCallID, toolCallName string) *ToolCallStart {
	return &ToolCallStart{Base: Base{EventType: TypeToolCallStart}, ToolCallID: toolCallID, ToolCallName: toolCallName}
}

// WithParent sets the parent message ID and returns the event.
func (e *ToolCallStart) WithParent(messageID string) *ToolCallStart {
	e.ParentMessageID = &messageID
	return e
}

// ToolCallArgs carries one raw-text delta of a tool call's JSON arguments.
type ToolCallArgs struct {
	Base
	ToolCallID string `json:"toolCallId"`
	Delta      string `json:"delta"`
}

// NewToolCallArgs creates a TOOL_CALL_ARGS event.
func NewToolCallArgs(toolCallID, delta string) *ToolCallArgs {
	return &ToolCallArgs{Base: Base{EventType: TypeToolCallArgs}, ToolCallID: toolCallID, Delta: delta}
}

// ToolCallEnd closes a streaming tool call; its arguments are complete.
type ToolCallEnd struct {
	Base
	ToolCallID string `json:"toolCallId"`
}

// NewToolCallEnd creates a TOOL_CALL_END event.
func NewToolCallEnd(toolCallID string) *ToolCallEnd {
	return &ToolCallEnd{Base: Base{EventType: TypeToolCallEnd}, ToolCallID: toolCallID}
}

// ToolCallChunk is a convenience variant collapsing ToolCallStart and
// ToolCallArgs. Consecutive chunks sharing a call ID extend the same call.
type ToolCallChunk struct {
	Base
	ToolCallID      string  `json:"toolCallId,omitempty"`
	ToolCallName    string  `json:"toolCallName,omitempty"`
	ParentMessageID *string `json:"parentMessageId,omitempty"`
	Delta           string  `json:"delta,omitempty"`
}

// NewToolCallChunk creates a TOOL_CALL_CHUNK event.
func NewToolCallChunk(toolCallID, toolCallName, delta string) *ToolCallChunk {
	return &ToolCallChunk{Base: Base{EventType: TypeToolCallChunk}, ToolCallID: toolCallID, ToolCallName: toolCallName, Delta: delta}
}

// ToolCallResult delivers the result of a tool execution back into the
// conversation as a tool message.
type ToolCallResult struct {
	Base
	MessageID  string `json:"messageId"`
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
	Role       string `json:"role,omitempty"`
}

// NewToolCallResult creates a TOOL_CALL_RESULT event.
func NewToolCallResult(messageID, toolCallID, content string) *ToolCallResult {
	return &ToolCallResult{Base: Base{EventType: TypeToolCallResult}, MessageID: messageID, ToolCallID: toolCallID, Content: content, Role: "tool"}
}
