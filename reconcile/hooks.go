package reconcile

import (
	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/event"
)

// StateHooks receives notifications about application-state changes as the
// reconciler folds events. Any field may be nil. Hooks run synchronously on
// the reconciler's goroutine; slow hooks stall the pipeline.
type StateHooks struct {
	// OnStateSnapshot fires after the state is replaced wholesale.
	OnStateSnapshot func(state agui.State)
	// OnStateDelta fires after a patch is applied successfully.
	OnStateDelta func(patch []event.PatchOperation)
	// OnStateError fires when a patch fails to apply. The state is left
	// unchanged; the run continues.
	OnStateError func(err error, patch []event.PatchOperation)
}

// ComposeHooks merges multiple hook sets into one that invokes each in
// order.
func ComposeHooks(hooks ...StateHooks) StateHooks {
	return StateHooks{
		OnStateSnapshot: func(state agui.State) {
			for _, h := range hooks {
				if h.OnStateSnapshot != nil {
					h.OnStateSnapshot(state)
				}
			}
		},
		OnStateDelta: func(patch []event.PatchOperation) {
			for _, h := range hooks {
				if h.OnStateDelta != nil {
					h.OnStateDelta(patch)
				}
			}
		},
		OnStateError: func(err error, patch []event.PatchOperation) {
			for _, h := range hooks {
				if h.OnStateError != nil {
					h.OnStateError(err, patch)
				}
			}
		},
	}
}

func (h StateHooks) stateSnapshot(state agui.State) {
	if h.OnStateSnapshot != nil {
		h.OnStateSnapshot(state)
	}
}

func (h StateHooks) stateDelta(patch []event.PatchOperation) {
	if h.OnStateDelta != nil {
		h.OnStateDelta(patch)
	}
}

func (h StateHooks) stateError(err error, patch []event.PatchOperation) {
	if h.OnStateError != nil {
		h.OnStateError(err, patch)
	}
}
