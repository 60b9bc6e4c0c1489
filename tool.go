package agui

import "encoding/json"

// Tool describes a capability the frontend makes available to the agent.
// Definitions are sent to the backend as part of the run input; the agent
// requests invocations via tool-call events.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string `json:"name"`
	// Description explains what the tool does.
	Description string `json:"description"`
	// Parameters is a JSON Schema object describing the tool's arguments.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}
