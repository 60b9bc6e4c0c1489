package agui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaForSimpleTypes(t *testing.T) {
	type Args struct {
		Name   string  `json:"name"`
		Age    int     `json:"age"`
		Score  float64 `json:"score"`
		Active bool    `json:"active"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	assert.Equal(t, "object", result["type"])
	props := result["properties"].(map[string]any)
	assert.Equal(t, "string", props["name"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["age"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["active"].(map[string]any)["type"])
}

func TestSchemaForTags(t *testing.T) {
	type Args struct {
		Query string `json:"query" desc:"Search query" required:"true"`
		Limit int    `json:"limit" desc:"Maximum results"`
		Omit  string `json:"-"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Search query"},
			"limit": {"type": "integer", "description": "Maximum results"}
		},
		"required": ["query"]
	}`, string(schema))
}

func TestSchemaForNested(t *testing.T) {
	type Filter struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	type Args struct {
		Filters []Filter          `json:"filters" desc:"Filters to apply"`
		Labels  map[string]string `json:"labels"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))
	props := result["properties"].(map[string]any)

	filters := props["filters"].(map[string]any)
	assert.Equal(t, "array", filters["type"])
	items := filters["items"].(map[string]any)
	assert.Equal(t, "object", items["type"])
	assert.Contains(t, items["properties"], "field")

	labels := props["labels"].(map[string]any)
	assert.Equal(t, "object", labels["type"])
}

func TestSchemaForEmptyStruct(t *testing.T) {
	schema := MustSchemaFor[struct{}]()

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))
	assert.Equal(t, "object", result["type"])
}
