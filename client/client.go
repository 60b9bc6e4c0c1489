// Package client ties the AG-UI runtime together: it POSTs a run's input
// over the SSE transport, verifies the resulting event stream, folds it
// into conversation messages and application state, and executes tool
// calls against the local registry.
package client

import (
	"log/slog"
	"time"

	"github.com/spetersoncode/agui/event"
	"github.com/spetersoncode/agui/reconcile"
	"github.com/spetersoncode/agui/sse"
	"github.com/spetersoncode/agui/tool"
)

// Config holds configuration for an Agent.
type Config struct {
	// Endpoint is the agent URL runs are POSTed to.
	Endpoint string

	// APIKey authenticates requests. Sent as "Authorization: <AuthScheme>
	// <key>" by default, or raw under AuthHeader when that is set.
	APIKey     string
	AuthHeader string
	AuthScheme string

	// ConnectTimeout and ReadTimeout tune the transport. Zero values use
	// the transport defaults; a zero ReadTimeout still gets the default,
	// use a negative value to disable the read timer entirely.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// BufferSize is the transport frame channel capacity.
	BufferSize int

	// Registry holds the frontend tools advertised to the agent and
	// executed locally when the agent calls them. Optional.
	Registry *tool.Registry

	// Engine overrides the tool execution engine built from Registry.
	// Optional; requires Registry when nil and tools are registered.
	Engine *tool.Engine

	// Hooks receives application-state change notifications.
	Hooks reconcile.StateHooks

	Logger *slog.Logger
}

// Agent runs conversations against one AG-UI endpoint.
// An Agent is safe for concurrent use; each Run has independent state.
type Agent struct {
	transport *sse.Client
	engine    *tool.Engine
	hooks     reconcile.StateHooks
	logger    *slog.Logger
}

// New creates an Agent from cfg.
func New(cfg Config) *Agent {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = sse.DefaultReadTimeout
	} else if readTimeout < 0 {
		readTimeout = 0
	}

	transport := sse.NewClient(sse.Config{
		Endpoint:       cfg.Endpoint,
		APIKey:         cfg.APIKey,
		AuthHeader:     cfg.AuthHeader,
		AuthScheme:     cfg.AuthScheme,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    readTimeout,
		BufferSize:     cfg.BufferSize,
		Logger:         logger,
	})

	engine := cfg.Engine
	if engine == nil && cfg.Registry != nil {
		engine = tool.NewEngine(cfg.Registry, tool.WithLogger(logger))
	}

	return &Agent{
		transport: transport,
		engine:    engine,
		hooks:     cfg.Hooks,
		logger:    logger,
	}
}

// Close releases idle transport connections. Safe to call multiple times.
func (a *Agent) Close() {
	a.transport.Close()
}

// Update is one emission of the run pipeline.
type Update struct {
	// Event is the protocol event this update reflects. Local tool
	// executions surface as synthetic ToolCallResult events.
	Event event.Event

	// Snapshot is the reconciled (messages, state) view after this
	// update, set only when observable state changed.
	Snapshot *reconcile.Snapshot

	// Err is the terminal run failure. It is set at most once, on the
	// last update before the channel closes. Tool failures do not end
	// the run and are reported as tool-result content instead.
	Err error
}
