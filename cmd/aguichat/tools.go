package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spetersoncode/agui/tool"
)

// SetupDemoTools registers local tools the agent can call back into.
// These tools are enabled by default (AGUI_DEMO_TOOLS=true).
func SetupDemoTools(registry *tool.Registry) {
	// Time tool
	tool.MustRegisterFunc(registry, "get_time",
		"Get the current local time",
		func(ctx context.Context, args struct{}) (string, error) {
			return fmt.Sprintf(`{"time": %q}`, time.Now().Format(time.RFC3339)), nil
		},
	)

	// Echo tool - useful for testing
	tool.MustRegisterFunc(registry, "echo",
		"Echo back the input message (useful for testing)",
		func(ctx context.Context, args struct {
			Message string `json:"message" desc:"Message to echo back" required:"true"`
		}) (string, error) {
			return fmt.Sprintf(`{"echo": %q}`, args.Message), nil
		},
	)
}
