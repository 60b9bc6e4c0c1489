package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	agui "github.com/spetersoncode/agui"
)

// FromMCPTool converts an MCP tool definition to an AG-UI tool definition.
// It extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) agui.Tool {
	var schema json.RawMessage
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return agui.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromMCPTools converts a slice of MCP tools.
func FromMCPTools(tools []mcp.Tool) []agui.Tool {
	result := make([]agui.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromMCPTool(t)
	}
	return result
}

// toCallRequest builds an MCP call from a completed tool call. Arguments
// that are not valid JSON are passed through as a raw string.
func toCallRequest(call agui.ToolCall) mcp.CallToolRequest {
	var args any
	if raw := call.Function.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			args = raw
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Function.Name,
			Arguments: args,
		},
	}
}

// resultText flattens a call result into text: text parts joined by
// newlines, non-text and structured content rendered as JSON.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n")
}
