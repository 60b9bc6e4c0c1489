package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("dispatches on the type field", func(t *testing.T) {
		ev, err := Decode([]byte(`{"type":"TEXT_MESSAGE_CONTENT","messageId":"m1","delta":"Hi"}`))
		require.NoError(t, err)

		content, ok := ev.(*TextMessageContent)
		require.True(t, ok)
		assert.Equal(t, "m1", content.MessageID)
		assert.Equal(t, "Hi", content.Delta)
		assert.Equal(t, TypeTextMessageContent, ev.Type())
	})

	t.Run("state delta carries patch operations", func(t *testing.T) {
		ev, err := Decode([]byte(`{"type":"STATE_DELTA","delta":[{"op":"add","path":"/x","value":1}]}`))
		require.NoError(t, err)

		delta, ok := ev.(*StateDelta)
		require.True(t, ok)
		require.Len(t, delta.Delta, 1)
		assert.Equal(t, "add", delta.Delta[0].Op)
		assert.Equal(t, "/x", delta.Delta[0].Path)
	})

	t.Run("tool call start keeps the parent message", func(t *testing.T) {
		ev, err := Decode([]byte(`{"type":"TOOL_CALL_START","toolCallId":"tc1","toolCallName":"search","parentMessageId":"m1"}`))
		require.NoError(t, err)

		start, ok := ev.(*ToolCallStart)
		require.True(t, ok)
		assert.Equal(t, "search", start.ToolCallName)
		require.NotNil(t, start.ParentMessageID)
		assert.Equal(t, "m1", *start.ParentMessageID)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"NOT_A_REAL_EVENT"}`))

		var unknown *ErrUnknownType
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "NOT_A_REAL_EVENT", unknown.Type)
	})

	t.Run("malformed frame is rejected", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":`))
		require.Error(t, err)
	})

	t.Run("field type mismatch is rejected", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"TEXT_MESSAGE_CONTENT","messageId":42}`))
		require.Error(t, err)
	})
}

// Every constructor's output must decode back to an equal value, so the
// union stays symmetric between producers and consumers.
func TestDecodeRoundTrip(t *testing.T) {
	events := []Event{
		NewRunStarted("t1", "r1"),
		NewRunError("model overloaded"),
		NewStepStarted("plan"),
		NewTextMessageStart("m1"),
		NewTextMessageChunk("m1", "partial"),
		NewToolCallArgs("tc1", `{"q":`),
		NewToolCallResult("m2", "tc1", "42"),
		NewStateSnapshot(json.RawMessage(`{"count":1}`)),
		NewCustom("PredictState", json.RawMessage(`[]`)),
		NewThinkingTextMessageContent("hmm"),
	}

	for _, in := range events {
		t.Run(string(in.Type()), func(t *testing.T) {
			data, err := json.Marshal(in)
			require.NoError(t, err)

			out, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}
