package routing

import "sync"

// RequestContext is the thin request abstraction dispatched handlers
// receive. Web-framework adapters wrap their native context in it.
type RequestContext interface {
	// Method returns the HTTP method
	Method() string

	// Path returns the request path
	Path() string

	// Param returns the i-th regex capture group from the matched pattern
	Param(i int) string

	// ParamCount returns the number of capture groups
	ParamCount() int

	// String writes a plain-text response
	String(status int, body string) error

	// JSON writes a JSON response
	JSON(status int, v interface{}) error
}

// HandlerFunc handles a dispatched request
type HandlerFunc func(ctx RequestContext) error

// CommandFunc handles a dispatched CLI command
type CommandFunc func(args []string) error

// HandlerRegistry maps "TypeName::MethodName" callback references from
// the compiled table to runtime handler functions. Applications register
// their handlers at bootstrap; the dispatcher resolves through it.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	commands map[string]CommandFunc
}

// NewHandlerRegistry creates an empty handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]HandlerFunc),
		commands: make(map[string]CommandFunc),
	}
}

// Register binds a callback reference to an HTTP handler
func (r *HandlerRegistry) Register(callback string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[callback] = handler
}

// RegisterCommand binds a callback reference to a CLI command handler
func (r *HandlerRegistry) RegisterCommand(callback string, handler CommandFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[callback] = handler
}

// Resolve returns the HTTP handler bound to a callback reference
func (r *HandlerRegistry) Resolve(callback string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[callback]
	return handler, ok
}

// ResolveCommand returns the CLI handler bound to a callback reference
func (r *HandlerRegistry) ResolveCommand(callback string) (CommandFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.commands[callback]
	return handler, ok
}

// CommandRegistry is a CommandRegistrar that resolves deferred bindings
// against a handler registry, producing a runnable command set.
type CommandRegistry struct {
	registry *HandlerRegistry

	mu       sync.RWMutex
	commands map[string]map[string]string // group → pattern → callback
}

// NewCommandRegistry creates a command registry backed by a handler registry
func NewCommandRegistry(registry *HandlerRegistry) *CommandRegistry {
	return &CommandRegistry{
		registry: registry,
		commands: make(map[string]map[string]string),
	}
}

// Register records a group/pattern → callback binding
func (c *CommandRegistry) Register(group, pattern, callback string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.commands[group] == nil {
		c.commands[group] = make(map[string]string)
	}
	c.commands[group][pattern] = callback
}

// Lookup returns the callback bound to a group and command pattern
func (c *CommandRegistry) Lookup(group, pattern string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	patterns, ok := c.commands[group]
	if !ok {
		return "", false
	}
	callback, ok := patterns[pattern]
	return callback, ok
}

// Run resolves and executes the command bound to group/pattern
func (c *CommandRegistry) Run(group, pattern string, args []string) (bool, error) {
	callback, ok := c.Lookup(group, pattern)
	if !ok {
		return false, nil
	}
	handler, ok := c.registry.ResolveCommand(callback)
	if !ok {
		return false, nil
	}
	return true, handler(args)
}
