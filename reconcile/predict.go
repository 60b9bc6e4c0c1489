package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/spetersoncode/agui/jsonpointer"
)

// PredictStateName is the Custom event name that installs predictive
// state rules.
const PredictStateName = "PredictState"

// PredictiveStateRule declares that while the named tool's arguments are
// streaming, the state value addressed by StateKey should optimistically
// mirror the named argument (or the whole arguments object when
// ToolArgument is empty). Rules are installed by a Custom event named
// "PredictState" and cleared at StepFinished or run end.
type PredictiveStateRule struct {
	// StateKey addresses the state value to write: either a bare
	// top-level key or a full JSON Pointer starting with "/".
	StateKey string `json:"state_key"`
	// Tool names the tool whose streaming arguments drive the update.
	Tool string `json:"tool"`
	// ToolArgument selects one argument by name. Empty mirrors the whole
	// arguments object.
	ToolArgument string `json:"tool_argument,omitempty"`
}

// pointer returns the rule's target as a JSON Pointer.
func (r PredictiveStateRule) pointer() string {
	if strings.HasPrefix(r.StateKey, "/") {
		return r.StateKey
	}
	return jsonpointer.CreatePath(r.StateKey)
}

// parseRules decodes the value of a PredictState custom event.
func parseRules(value json.RawMessage) ([]PredictiveStateRule, error) {
	var rules []PredictiveStateRule
	if err := json.Unmarshal(value, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// predictedValue extracts the value a rule should write from a tool call's
// accumulated arguments. The second return is false when the arguments are
// not yet complete JSON or the selected argument is absent.
func predictedValue(rule PredictiveStateRule, arguments string) (json.RawMessage, bool) {
	var args map[string]json.RawMessage
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, false
	}
	if rule.ToolArgument == "" {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, false
		}
		return raw, true
	}
	raw, ok := args[rule.ToolArgument]
	return raw, ok
}
