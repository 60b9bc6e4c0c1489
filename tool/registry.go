package tool

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	agui "github.com/spetersoncode/agui"
)

// registeredTool combines a tool definition with its handler and execution
// policy.
type registeredTool struct {
	tool             agui.Tool
	handler          Handler
	maxExecutionTime time.Duration
	validate         Validator
	canExecute       func(call agui.ToolCall) bool
}

// RegisterOption configures one tool registration.
type RegisterOption func(*registeredTool)

// WithMaxExecutionTime bounds a single execution attempt. Exceeding it
// fails the attempt with ErrToolTimeout.
func WithMaxExecutionTime(d time.Duration) RegisterOption {
	return func(rt *registeredTool) { rt.maxExecutionTime = d }
}

// WithValidator installs an argument validator run before execution.
func WithValidator(v Validator) RegisterOption {
	return func(rt *registeredTool) { rt.validate = v }
}

// WithCanExecute installs a predicate consulted before execution. A false
// result rejects the call like a validation failure.
func WithCanExecute(fn func(call agui.ToolCall) bool) RegisterOption {
	return func(rt *registeredTool) { rt.canExecute = fn }
}

// Registry manages registered tools and their handlers.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*registeredTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*registeredTool),
	}
}

// Register adds a tool with its handler to the registry.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(t agui.Tool, handler Handler, opts ...RegisterOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: t.Name}
	}

	rt := &registeredTool{tool: t, handler: handler}
	for _, opt := range opts {
		opt(rt)
	}
	r.tools[t.Name] = rt
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t agui.Tool, handler Handler, opts ...RegisterOption) {
	if err := r.Register(t, handler, opts...); err != nil {
		panic(err)
	}
}

// Unregister removes a tool from the registry and reports whether a tool
// was registered under that name. Unregistering an absent name is a no-op.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tools[name]
	delete(r.tools, name)
	return ok
}

// Get retrieves a handler by tool name.
// Returns the handler and true if found, or nil and false if not found.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// GetTool retrieves a tool definition by name.
// Returns the tool and true if found, or a zero tool and false if not found.
func (r *Registry) GetTool(name string) (agui.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return agui.Tool{}, false
	}
	return rt.tool, true
}

// Tools returns all registered tool definitions. The result is what a run
// advertises to the agent as its frontend tools.
func (r *Registry) Tools() []agui.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]agui.Tool, 0, len(r.tools))
	for _, rt := range r.tools {
		tools = append(tools, rt.tool)
	}
	return tools
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// lookup returns the full registration for a name.
func (r *Registry) lookup(name string) (*registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tools[name]
	return rt, ok
}

// RegisterFunc registers a tool with a typed handler that automatically
// unmarshals the arguments JSON into the specified type T. The parameter
// schema is generated from T's struct tags.
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	tool.RegisterFunc(registry, "search", "Search the web",
//	    func(ctx context.Context, args SearchArgs) (string, error) {
//	        return doSearch(args.Query), nil
//	    },
//	)
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T], opts ...RegisterOption) error {
	schema, err := agui.SchemaFor[T]()
	if err != nil {
		return err
	}

	t := agui.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}

	handler := func(ctx context.Context, call agui.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return "", &ErrToolValidation{Name: name, Reason: err.Error()}
		}
		return fn(ctx, args)
	}

	return r.Register(t, handler, opts...)
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T], opts ...RegisterOption) {
	if err := RegisterFunc(r, name, description, fn, opts...); err != nil {
		panic(err)
	}
}
