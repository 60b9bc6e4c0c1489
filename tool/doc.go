// Package tool executes frontend-defined tools against incoming AG-UI
// tool calls.
//
// A Registry maps tool names to handlers and holds the tool definitions a
// run advertises to the agent. An Engine wraps a Registry with the
// execution policy: per-attempt timeouts, error classification, retries
// with backoff, and a circuit breaker per tool name.
//
// Registering a tool:
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterFunc(registry, "get_weather", "Get the current weather",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return fetchWeather(ctx, args.City)
//	    },
//	    tool.WithMaxExecutionTime(10*time.Second),
//	)
//
// Executing a call:
//
//	engine := tool.NewEngine(registry)
//	content, err := engine.Execute(ctx, call)
//
// Failures are classified into categories (configuration, user input,
// security, transient, resource, unknown) that drive the retry decision:
// transient errors always retry, resource errors retry by default,
// user-input and security errors never do. A tool that keeps failing trips
// its breaker and fails fast until the recovery timeout elapses.
package tool
