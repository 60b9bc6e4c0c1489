// Package agui provides the client-side runtime for the AG-UI protocol:
// an event-based wire protocol that lets a backend agent stream typed
// events (message deltas, tool-call deltas, state snapshots and deltas,
// lifecycle markers) to a frontend over a long-lived HTTP/SSE connection.
//
// The root package defines the shared protocol types: messages, tool
// calls, tool definitions, run input, and the categorized error taxonomy
// used across the runtime.
//
// # Subpackages
//
//   - [github.com/spetersoncode/agui/event]: the closed protocol event
//     union and JSON decoding.
//   - [github.com/spetersoncode/agui/sse]: the SSE transport client.
//   - [github.com/spetersoncode/agui/verify]: the protocol verifier that
//     enforces event-ordering invariants over a run.
//   - [github.com/spetersoncode/agui/reconcile]: folds verified events
//     into conversation messages and application state, including
//     RFC 6902 patch application and predictive state updates.
//   - [github.com/spetersoncode/agui/jsonpointer]: RFC 6901 addressing.
//   - [github.com/spetersoncode/agui/tool]: the tool execution engine
//     with retries, backoff, and per-tool circuit breakers.
//   - [github.com/spetersoncode/agui/mcp]: imports tools from an MCP
//     server into the tool registry.
//   - [github.com/spetersoncode/agui/client]: ties transport, verifier,
//     reconciler, and tool engine together into a run pipeline.
//
// # Basic Usage
//
// Run an agent and observe the evolving conversation:
//
//	registry := tool.NewRegistry()
//	a := client.New(client.Config{
//	    Endpoint: "https://example.com/agent",
//	    APIKey:   os.Getenv("AGUI_API_KEY"),
//	    Registry: registry,
//	})
//
//	updates, err := a.Run(ctx, agui.RunAgentInput{
//	    Messages: []agui.Message{agui.NewUserMessage("Hello!")},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for u := range updates {
//	    if u.Snapshot != nil {
//	        render(u.Snapshot.Messages)
//	    }
//	}
package agui
