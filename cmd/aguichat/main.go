// Package main provides an interactive terminal chat client for AG-UI
// protocol agents. It streams agent runs over SSE, executes client-side
// tool calls locally, and carries conversation history and shared state
// across runs.
//
// Configuration is via environment variables:
//
//	AGUI_ENDPOINT        - Agent endpoint URL (required)
//	AGUI_API_KEY         - API key sent with each run (optional)
//	AGUI_AUTH_HEADER     - Custom auth header name (default: Authorization)
//	AGUI_AUTH_SCHEME     - Auth scheme prefix (default: Bearer)
//	AGUI_CONNECT_TIMEOUT - Connection timeout (default: 30s)
//	AGUI_READ_TIMEOUT    - Per-event read timeout (default: 5m)
//	AGUI_DEMO_TOOLS      - Register local demo tools (default: true)
//	AGUI_MCP_COMMAND     - Stdio MCP server command to import tools from (optional)
//	AGUI_MCP_SSE_URL     - SSE MCP server URL to import tools from (optional)
//	AGUI_LOG_LEVEL       - Log level: debug, info, warn, error (default: info)
//
// Usage:
//
//	AGUI_ENDPOINT=http://localhost:8000/api/agent go run ./cmd/aguichat
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/client"
	"github.com/spetersoncode/agui/event"
	"github.com/spetersoncode/agui/mcp"
	"github.com/spetersoncode/agui/tool"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.slogLevel(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := tool.NewRegistry()
	if cfg.EnableDemoTools {
		SetupDemoTools(registry)
	}

	if remote, err := connectMCP(ctx, cfg); err != nil {
		logger.Error("mcp connect failed", "error", err)
	} else if remote != nil {
		defer remote.Close()
		if err := remote.RegisterAll(registry); err != nil {
			logger.Error("mcp tool import failed", "error", err)
		} else {
			logger.Info("imported mcp tools", "count", remote.Len())
		}
	}

	agent := client.New(client.Config{
		Endpoint:       cfg.Endpoint,
		APIKey:         cfg.APIKey,
		AuthHeader:     cfg.AuthHeader,
		AuthScheme:     cfg.AuthScheme,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		Registry:       registry,
		Logger:         logger,
	})
	defer agent.Close()

	fmt.Printf("Connected to %s (%d local tools)\n", cfg.Endpoint, registry.Len())
	fmt.Println("Type a message, /state to inspect shared state, /reset to clear history, /quit to exit.")

	repl(ctx, agent, os.Stdin)
}

// connectMCP dials the configured MCP server, if any. Both variables unset
// means MCP is disabled and (nil, nil) is returned.
func connectMCP(ctx context.Context, cfg *Config) (*mcp.Remote, error) {
	switch {
	case cfg.MCPCommand != "":
		parts := strings.Fields(cfg.MCPCommand)
		return mcp.Connect(ctx, parts[0], nil, parts[1:]...)
	case cfg.MCPSSEURL != "":
		return mcp.ConnectSSE(ctx, cfg.MCPSSEURL)
	default:
		return nil, nil
	}
}

func repl(ctx context.Context, agent *client.Agent, in *os.File) {
	var (
		threadID = agui.GenerateThreadID()
		messages []agui.Message
		state    agui.State
	)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return
		case line == "/reset":
			threadID = agui.GenerateThreadID()
			messages = nil
			state = nil
			fmt.Println("Conversation cleared.")
			continue
		case line == "/state":
			printState(state)
			continue
		}

		messages = append(messages, agui.NewUserMessage(line))

		snapshot, err := runTurn(ctx, agent, agui.RunAgentInput{
			ThreadID: threadID,
			Messages: messages,
			State:    state,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nRun failed: %v\n", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}
		if snapshot != nil {
			messages = snapshot.Messages
			state = snapshot.State
		}
	}
}

// runTurn executes one agent run, printing streamed output as it arrives,
// and returns the final reconciled snapshot.
func runTurn(ctx context.Context, agent *client.Agent, input agui.RunAgentInput) (*snapshotRef, error) {
	updates, err := agent.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	var (
		final    *snapshotRef
		printing bool
	)
	for u := range updates {
		if u.Err != nil {
			if printing {
				fmt.Println()
			}
			return final, u.Err
		}
		if u.Snapshot != nil {
			final = &snapshotRef{Messages: u.Snapshot.Messages, State: u.Snapshot.State}
		}

		switch ev := u.Event.(type) {
		case *event.TextMessageStart:
			fmt.Print("\nAssistant: ")
			printing = true
		case *event.TextMessageContent:
			fmt.Print(ev.Delta)
		case *event.TextMessageChunk:
			if !printing {
				fmt.Print("\nAssistant: ")
				printing = true
			}
			fmt.Print(ev.Delta)
		case *event.TextMessageEnd:
			fmt.Println()
			printing = false
		case *event.ToolCallStart:
			if printing {
				fmt.Println()
				printing = false
			}
			fmt.Printf("[calling %s]\n", ev.ToolCallName)
		case *event.ToolCallResult:
			fmt.Printf("[result] %s\n", ev.Content)
		case *event.StepStarted:
			fmt.Printf("[step %s]\n", ev.StepName)
		}
	}
	if printing {
		fmt.Println()
	}
	return final, nil
}

type snapshotRef struct {
	Messages []agui.Message
	State    agui.State
}

func printState(state agui.State) {
	if len(state) == 0 {
		fmt.Println("State: (empty)")
		return
	}
	var pretty map[string]any
	if err := json.Unmarshal(state, &pretty); err != nil {
		fmt.Printf("State: %s\n", state)
		return
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Printf("State: %s\n", out)
}
