package agui

// Role identifies the sender of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleDeveloper Role = "developer"
)

// Message is a single message in a conversation. The wire shape follows the
// AG-UI protocol: Content is nullable, assistant messages may carry tool
// calls, and tool messages reference the call they answer via ToolCallID.
type Message struct {
	// ID uniquely identifies the message within a run's message list.
	ID string `json:"id"`
	// Role identifies the message variant: system, user, assistant, or tool.
	Role Role `json:"role"`
	// Content is the message text. Nil when the message carries no text
	// (for example an assistant message holding only tool calls).
	Content *string `json:"content,omitempty"`
	// Name optionally names the sender. For tool messages it is the tool name.
	Name *string `json:"name,omitempty"`
	// ToolCalls holds tool invocation requests. Assistant messages only.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolCallID references the tool call this message answers. Tool messages only.
	ToolCallID *string `json:"toolCallId,omitempty"`
}

// ToolCall is a request from the agent to invoke a tool.
type ToolCall struct {
	// ID uniquely identifies this call; results are matched by it.
	ID string `json:"id"`
	// Type is always "function" in the current protocol.
	Type string `json:"type"`
	// Function carries the tool name and its accumulated arguments.
	Function FunctionCall `json:"function"`
}

// FunctionCall names the tool and carries its arguments. Arguments
// accumulate incrementally as raw text while the call streams; callers
// parse the JSON on demand once the call has ended.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallTypeFunction is the only tool call type the protocol defines.
const ToolCallTypeFunction = "function"

// NewSystemMessage creates a system message with a generated ID.
func NewSystemMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleSystem, Content: &content}
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleUser, Content: &content}
}

// NewAssistantMessage creates an assistant message with a generated ID.
func NewAssistantMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleAssistant, Content: &content}
}

// NewToolMessage creates a tool result message answering the given tool call.
func NewToolMessage(id, toolCallID, name, content string) Message {
	if id == "" {
		id = GenerateMessageID()
	}
	return Message{
		ID:         id,
		Role:       RoleTool,
		Content:    &content,
		Name:       &name,
		ToolCallID: &toolCallID,
	}
}

// Clone returns a deep copy of the message. Observed copies of the
// reconciler's accumulator must not alias its internal state.
func (m Message) Clone() Message {
	out := m
	if m.Content != nil {
		c := *m.Content
		out.Content = &c
	}
	if m.Name != nil {
		n := *m.Name
		out.Name = &n
	}
	if m.ToolCallID != nil {
		id := *m.ToolCallID
		out.ToolCallID = &id
	}
	if len(m.ToolCalls) > 0 {
		out.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(out.ToolCalls, m.ToolCalls)
	}
	return out
}

// CloneMessages deep-copies a message list.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}
