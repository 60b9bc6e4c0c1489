package agui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("tool"), RoleTool)
	assert.Equal(t, Role("developer"), RoleDeveloper)
}

func TestMessageConstructors(t *testing.T) {
	t.Run("user message", func(t *testing.T) {
		m := NewUserMessage("hello")
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, RoleUser, m.Role)
		require.NotNil(t, m.Content)
		assert.Equal(t, "hello", *m.Content)
	})

	t.Run("tool message references its call", func(t *testing.T) {
		m := NewToolMessage("m1", "tc1", "get_weather", `{"temp": 20}`)
		assert.Equal(t, "m1", m.ID)
		assert.Equal(t, RoleTool, m.Role)
		require.NotNil(t, m.ToolCallID)
		assert.Equal(t, "tc1", *m.ToolCallID)
		require.NotNil(t, m.Name)
		assert.Equal(t, "get_weather", *m.Name)
	})

	t.Run("tool message generates ID when empty", func(t *testing.T) {
		m := NewToolMessage("", "tc1", "echo", "ok")
		assert.NotEmpty(t, m.ID)
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		a := NewUserMessage("a")
		b := NewUserMessage("b")
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestMessageWireFormat(t *testing.T) {
	t.Run("nil content is omitted", func(t *testing.T) {
		m := Message{ID: "m1", Role: RoleAssistant, ToolCalls: []ToolCall{
			{ID: "tc1", Type: ToolCallTypeFunction, Function: FunctionCall{Name: "echo", Arguments: "{}"}},
		}}
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"content"`)
		assert.Contains(t, string(data), `"toolCalls"`)
	})

	t.Run("round trip preserves fields", func(t *testing.T) {
		in := NewToolMessage("m1", "tc1", "echo", "done")
		data, err := json.Marshal(in)
		require.NoError(t, err)
		var out Message
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})
}

func TestMessageClone(t *testing.T) {
	t.Run("mutating the clone leaves the original intact", func(t *testing.T) {
		content := "original"
		name := "caller"
		callID := "tc1"
		m := Message{
			ID: "m1", Role: RoleAssistant,
			Content: &content, Name: &name, ToolCallID: &callID,
			ToolCalls: []ToolCall{{ID: "tc1", Type: ToolCallTypeFunction}},
		}

		c := m.Clone()
		*c.Content = "mutated"
		*c.Name = "other"
		*c.ToolCallID = "tc2"
		c.ToolCalls[0].ID = "tc9"

		assert.Equal(t, "original", *m.Content)
		assert.Equal(t, "caller", *m.Name)
		assert.Equal(t, "tc1", *m.ToolCallID)
		assert.Equal(t, "tc1", m.ToolCalls[0].ID)
	})

	t.Run("nil fields stay nil", func(t *testing.T) {
		c := Message{ID: "m1", Role: RoleUser}.Clone()
		assert.Nil(t, c.Content)
		assert.Nil(t, c.Name)
		assert.Nil(t, c.ToolCallID)
		assert.Nil(t, c.ToolCalls)
	})
}

func TestCloneMessages(t *testing.T) {
	t.Run("nil slice stays nil", func(t *testing.T) {
		assert.Nil(t, CloneMessages(nil))
	})

	t.Run("deep copies every element", func(t *testing.T) {
		msgs := []Message{NewUserMessage("a"), NewAssistantMessage("b")}
		out := CloneMessages(msgs)
		require.Len(t, out, 2)
		*out[0].Content = "mutated"
		assert.Equal(t, "a", *msgs[0].Content)
	})
}
