package event

import "encoding/json"

// RunStarted marks the beginning of a run. It must be the first event on
// the stream, and only one may occur per run.
type RunStarted struct {
	Base
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
}

// NewRunStarted creates a RUN_STARTED event.
func NewRunStarted(threadID, runID string) *RunStarted {
	return &RunStarted{Base: Base{EventType: TypeRunStarted}, ThreadID: threadID, RunID: runID}
}

// RunFinished marks the successful end of a run. Result optionally carries
// a final value produced by the agent.
type RunFinished struct {
	Base
	ThreadID string          `json:"threadId"`
	RunID    string          `json:"runId"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// NewRunFinished creates a RUN_FINISHED event.
func NewRunFinished(threadID, runID string) *RunFinished {
	return &RunFinished{Base: Base{EventType: TypeRunFinished}, ThreadID: threadID, RunID: runID}
}

// RunError marks the failed end of a run. No further events are valid for
// that run.
type RunError struct {
	Base
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewRunError creates a RUN_ERROR event.
func NewRunError(message string) *RunError {
	return &RunError{Base: Base{EventType: TypeRunError}, Message: message}
}

// StepStarted marks the beginning of a named step within a run.
type StepStarted struct {
	Base
	StepName string `json:"stepName"`
}

// NewStepStarted creates a STEP_STARTED event.
func NewStepStarted(stepName string) *StepStarted {
	return &StepStarted{Base: Base{EventType: TypeStepStarted}, StepName: stepName}
}

// StepFinished marks the end of a named step within a run.
type StepFinished struct {
	Base
	StepName string `json:"stepName"`
}

// NewStepFinished creates a STEP_FINISHED event.
func NewStepFinished(stepName string) *StepFinished {
	return &StepFinished{Base: Base{EventType: TypeStepFinished}, StepName: stepName}
}
