package agui

import "github.com/google/uuid"

// GenerateThreadID creates a unique thread identifier.
func GenerateThreadID() string {
	return "thread-" + uuid.New().String()
}

// GenerateRunID creates a unique run identifier.
func GenerateRunID() string {
	return "run-" + uuid.New().String()
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// GenerateToolCallID creates a unique tool call identifier.
func GenerateToolCallID() string {
	return "tool-" + uuid.New().String()
}

// GenerateStepID creates a unique step identifier.
func GenerateStepID() string {
	return "step-" + uuid.New().String()
}
