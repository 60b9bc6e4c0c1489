package event

import "encoding/json"

// Custom is an application-defined extension event, dispatched by name.
// The runtime itself understands the "PredictState" custom event, which
// installs predictive state rules in the reconciler.
type Custom struct {
	Base
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// NewCustom creates a CUSTOM event.
func NewCustom(name string, value json.RawMessage) *Custom {
	return &Custom{Base: Base{EventType: TypeCustom}, Name: name, Value: value}
}

// Raw wraps an event from an external system that should be passed through
// without protocol-level processing.
type Raw struct {
	Base
	Event  json.RawMessage `json:"event"`
	Source *string         `json:"source,omitempty"`
}

// NewRaw creates a RAW event.
func NewRaw(inner json.RawMessage) *Raw {
	return &Raw{Base: Base{EventType: TypeRaw}, Event: inner}
}
