// Package mcp imports tools from MCP (Model Context Protocol) servers
// into the AG-UI tool registry.
//
// A Remote connects to one MCP server, caches its tool list, and proxies
// calls to it. RegisterAll wires every remote tool into a [tool.Registry]
// so the agent can call them like any locally defined frontend tool,
// including the engine's retry and circuit-breaker handling.
//
//	remote, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	registry := tool.NewRegistry()
//	if err := remote.RegisterAll(registry); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/tool"
)

// Remote provides access to the tools of one MCP server.
//
// Remote is safe for concurrent use. The tool list is cached locally and
// can be refreshed with [Remote.Refresh].
type Remote struct {
	client *mcpclient.Client
	mu     sync.RWMutex
	tools  map[string]agui.Tool
}

// Connect creates a Remote talking to an MCP server over stdio.
// The command is the path to the server executable; args are passed to it.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := mcpclient.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("mcp: failed to create client: %w", err)
	}
	return newRemote(ctx, c)
}

// ConnectSSE creates a Remote talking to an MCP server over SSE.
func ConnectSSE(ctx context.Context, baseURL string) (*Remote, error) {
	c, err := mcpclient.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("mcp: failed to create SSE client: %w", err)
	}
	return newRemote(ctx, c)
}

// NewRemoteFromClient creates a Remote from an existing MCP client. The
// client is started, the session initialized, and the tool list fetched.
func NewRemoteFromClient(ctx context.Context, c *mcpclient.Client) (*Remote, error) {
	return newRemote(ctx, c)
}

func newRemote(ctx context.Context, c *mcpclient.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("mcp: failed to start client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "agui-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: failed to initialize session: %w", err)
	}

	r := &Remote{
		client: c,
		tools:  make(map[string]agui.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: failed to list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Refresh fetches the current tool list from the server, replacing the
// cached one.
func (r *Remote) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]agui.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
	}
	return nil
}

// Tools returns all tools available from the server.
func (r *Remote) Tools() []agui.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]agui.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GetTool retrieves a tool definition by name.
func (r *Remote) GetTool(name string) (agui.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Has returns true if the server offers a tool with the given name.
func (r *Remote) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Len returns the number of available tools.
func (r *Remote) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call proxies a tool call to the server and returns the result content.
// A result the server flags as an error is returned as a Go error so the
// engine classifies and possibly retries it.
func (r *Remote) Call(ctx context.Context, call agui.ToolCall) (string, error) {
	result, err := r.client.CallTool(ctx, toCallRequest(call))
	if err != nil {
		return "", agui.NewTransientError("mcp: call failed", err)
	}
	content := resultText(result)
	if result == nil || result.IsError {
		return "", fmt.Errorf("mcp: %s failed: %s", call.Function.Name, content)
	}
	return content, nil
}

// Handler returns a tool.Handler that proxies the named tool.
func (r *Remote) Handler() tool.Handler {
	return func(ctx context.Context, call agui.ToolCall) (string, error) {
		return r.Call(ctx, call)
	}
}

// RegisterAll registers every cached remote tool in the given registry,
// proxying executions to the server. Registration stops at the first
// duplicate name.
func (r *Remote) RegisterAll(registry *tool.Registry, opts ...tool.RegisterOption) error {
	handler := r.Handler()
	for _, t := range r.Tools() {
		if err := registry.Register(t, handler, opts...); err != nil {
			return err
		}
	}
	return nil
}
