package agui

import "encoding/json"

// State is the run's application state: an opaque JSON value mutated only
// by whole-value replacement (state snapshots) or RFC 6902 patch
// application (state deltas).
type State = json.RawMessage

// Context is one contextual item forwarded to the agent alongside the
// conversation, such as the contents of the user's current document.
type Context struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// RunAgentInput is the payload POSTed to the agent endpoint to start a run.
type RunAgentInput struct {
	ThreadID       string          `json:"threadId"`
	RunID          string          `json:"runId"`
	Messages       []Message       `json:"messages"`
	State          State           `json:"state,omitempty"`
	Tools          []Tool          `json:"tools,omitempty"`
	Context        []Context       `json:"context,omitempty"`
	ForwardedProps json.RawMessage `json:"forwardedProps,omitempty"`
}

// Prepare fills in missing identifiers and returns a copy ready to send:
// ThreadID and RunID are generated when empty, and a nil State becomes the
// empty JSON object so the backend never sees a null state.
func (in RunAgentInput) Prepare() RunAgentInput {
	if in.ThreadID == "" {
		in.ThreadID = GenerateThreadID()
	}
	if in.RunID == "" {
		in.RunID = GenerateRunID()
	}
	if in.State == nil {
		in.State = State(`{}`)
	}
	return in
}
