package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/agui/event"
)

func verifyAll(t *testing.T, v *Verifier, events ...event.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, v.Verify(ev))
	}
}

func requireViolation(t *testing.T, err error) *ProtocolViolation {
	t.Helper()
	require.Error(t, err)
	var pv *ProtocolViolation
	require.True(t, errors.As(err, &pv))
	return pv
}

func TestVerifierLifecycle(t *testing.T) {
	t.Run("simple run", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageContent("m1", "Hi"),
			event.NewTextMessageEnd("m1"),
			event.NewRunFinished("t1", "r1"),
		)
	})

	t.Run("event before run started", func(t *testing.T) {
		v := New()
		pv := requireViolation(t, v.Verify(event.NewTextMessageStart("m1")))
		assert.Equal(t, event.TypeTextMessageStart, pv.EventType)
		assert.Contains(t, pv.Error(), "RUN_STARTED")
	})

	t.Run("nested run started", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		requireViolation(t, v.Verify(event.NewRunStarted("t1", "r2")))
	})

	t.Run("sequential runs on one stream", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewRunFinished("t1", "r1"),
			event.NewRunStarted("t1", "r2"),
			event.NewRunFinished("t1", "r2"),
		)
	})

	t.Run("no events after run error", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewRunError("boom"),
		)
		requireViolation(t, v.Verify(event.NewTextMessageStart("m1")))
		requireViolation(t, v.Verify(event.NewRunFinished("t1", "r1")))
	})

	t.Run("new run after run error", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewRunError("boom"),
			event.NewRunStarted("t1", "r2"),
			event.NewRunFinished("t1", "r2"),
		)
	})
}

func TestVerifierMessages(t *testing.T) {
	t.Run("content without start", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		pv := requireViolation(t, v.Verify(event.NewTextMessageContent("m1", "hi")))
		assert.Contains(t, pv.Reason, "m1")
	})

	t.Run("end without start", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		requireViolation(t, v.Verify(event.NewTextMessageEnd("m1")))
	})

	t.Run("duplicate start for same id", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
		)
		requireViolation(t, v.Verify(event.NewTextMessageStart("m1")))
	})

	t.Run("interleaved messages", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageStart("m2"),
			event.NewTextMessageContent("m2", "b"),
			event.NewTextMessageContent("m1", "a"),
			event.NewTextMessageEnd("m1"),
			event.NewTextMessageEnd("m2"),
			event.NewRunFinished("t1", "r1"),
		)
	})

	t.Run("id reuse after end", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageEnd("m1"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageEnd("m1"),
		)
	})

	t.Run("id reuse across runs", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageEnd("m1"),
			event.NewRunFinished("t1", "r1"),
			event.NewRunStarted("t1", "r2"),
			event.NewTextMessageStart("m1"),
			event.NewTextMessageEnd("m1"),
			event.NewRunFinished("t1", "r2"),
		)
	})
}

func TestVerifierToolCalls(t *testing.T) {
	t.Run("args without start", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		requireViolation(t, v.Verify(event.NewToolCallArgs("tc1", "{}")))
	})

	t.Run("concurrent tool calls", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewToolCallStart("tc1", "get_weather"),
			event.NewToolCallStart("tc2", "get_time"),
			event.NewToolCallArgs("tc1", `{"city":`),
			event.NewToolCallArgs("tc2", `{}`),
			event.NewToolCallEnd("tc2"),
			event.NewToolCallArgs("tc1", `"Oslo"}`),
			event.NewToolCallEnd("tc1"),
			event.NewRunFinished("t1", "r1"),
		)
	})

	t.Run("tool call open alongside message", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
			event.NewToolCallStart("tc1", "search"),
			event.NewToolCallEnd("tc1"),
			event.NewTextMessageEnd("m1"),
		)
	})
}

func TestVerifierRunFinishedPending(t *testing.T) {
	t.Run("pending message blocks finish", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
		)
		pv := requireViolation(t, v.Verify(event.NewRunFinished("t1", "r1")))
		assert.Contains(t, pv.Reason, "m1")
	})

	t.Run("violation names every pending id", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m2"),
			event.NewTextMessageStart("m1"),
			event.NewToolCallStart("tc1", "search"),
			event.NewStepStarted("plan"),
		)
		pv := requireViolation(t, v.Verify(event.NewRunFinished("t1", "r1")))
		assert.Contains(t, pv.Reason, "messages [m1, m2]")
		assert.Contains(t, pv.Reason, "tool calls [tc1]")
		assert.Contains(t, pv.Reason, "steps [plan]")
	})

	t.Run("verifier state preserved after rejected finish", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewTextMessageStart("m1"),
		)
		requireViolation(t, v.Verify(event.NewRunFinished("t1", "r1")))
		verifyAll(t, v,
			event.NewTextMessageEnd("m1"),
			event.NewRunFinished("t1", "r1"),
		)
	})
}

func TestVerifierSteps(t *testing.T) {
	t.Run("finish unstarted step", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		pv := requireViolation(t, v.Verify(event.NewStepFinished("plan")))
		assert.Contains(t, pv.Reason, "plan")
	})

	t.Run("duplicate step start", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewStepStarted("plan"),
		)
		requireViolation(t, v.Verify(event.NewStepStarted("plan")))
	})

	t.Run("nested distinct steps", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewStepStarted("plan"),
			event.NewStepStarted("search"),
			event.NewStepFinished("search"),
			event.NewStepFinished("plan"),
			event.NewRunFinished("t1", "r1"),
		)
	})
}

func TestVerifierThinking(t *testing.T) {
	t.Run("full thinking phase", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewThinkingStart(),
			event.NewThinkingTextMessageStart(),
			event.NewThinkingTextMessageContent("hmm"),
			event.NewThinkingTextMessageEnd(),
			event.NewThinkingEnd(),
			event.NewRunFinished("t1", "r1"),
		)
	})

	t.Run("thinking content outside thinking message", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewThinkingStart(),
		)
		requireViolation(t, v.Verify(event.NewThinkingTextMessageContent("hmm")))
	})

	t.Run("thinking message outside thinking step", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		requireViolation(t, v.Verify(event.NewThinkingTextMessageStart()))
	})

	t.Run("nested thinking start", func(t *testing.T) {
		v := New()
		verifyAll(t, v,
			event.NewRunStarted("t1", "r1"),
			event.NewThinkingStart(),
		)
		requireViolation(t, v.Verify(event.NewThinkingStart()))
	})

	t.Run("thinking end without start", func(t *testing.T) {
		v := New()
		verifyAll(t, v, event.NewRunStarted("t1", "r1"))
		requireViolation(t, v.Verify(event.NewThinkingEnd()))
	})
}

func TestVerifierPassthrough(t *testing.T) {
	v := New()
	verifyAll(t, v,
		event.NewRunStarted("t1", "r1"),
		event.NewStateSnapshot([]byte(`{}`)),
		event.NewStateDelta(nil),
		event.NewMessagesSnapshot(nil),
		event.NewCustom("PredictState", []byte(`[]`)),
		event.NewRaw([]byte(`{"foo":1}`)),
		event.NewTextMessageChunk("m1", "hi"),
		event.NewToolCallChunk("tc1", "search", "{}"),
		event.NewToolCallResult("m2", "tc1", "ok"),
		event.NewRunFinished("t1", "r1"),
	)
}
