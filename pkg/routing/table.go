// Package routing holds the compiled routing table produced by the
// novaroute compiler and the query contract the dispatching router
// consumes. The compiler is the sole writer; after a compile pass the
// table is handed off and treated as read-only.
package routing

import "github.com/google/uuid"

// CLIKey is the top-level key under which all CLI middleware is stored
const CLIKey = "CLI"

// SecurityAny is the security key for global CLI middleware
const SecurityAny = "any"

// CompiledRoute is one normalized, ready-to-dispatch entry
type CompiledRoute struct {
	Pattern    string // fully resolved pattern, base-group-prefixed and trimmed
	Callback   string // "TypeName::MethodName" handler reference
	Middleware bool   // true only for before-phase middleware entries
}

// Binding is a deferred CLI command binding. Bindings are recorded per
// group during compilation and applied against a command registrar when
// the CLI dispatcher boots.
type Binding struct {
	ID       uuid.UUID // unique per compile pass, used for bookkeeping and logs
	Group    string    // CLI command group
	Pattern  string    // command pattern within the group
	Callback string    // "TypeName::MethodName" handler reference
}

// CommandRegistrar receives deferred CLI bindings when they are applied
type CommandRegistrar interface {
	Register(group, pattern, callback string)
}

// Apply registers the binding with a command registrar
func (b Binding) Apply(r CommandRegistrar) {
	r.Register(b.Group, b.Pattern, b.Callback)
}

// Table is the aggregate routing table. Entry order within every bucket
// is insertion order, which dispatch relies on for first-match-wins.
type Table struct {
	routes           map[string][]CompiledRoute            // method → main routes
	routesMiddleware map[string][]CompiledRoute            // method → before-phase
	routesAfter      map[string][]CompiledRoute            // method → after-phase
	errors           map[string]string                     // context pattern → fallback callback
	cliGroups        map[string][]Binding                  // group → deferred bindings
	cliMiddleware    map[string]map[string][]CompiledRoute // CLIKey → security → entries
}

// NewTable creates an empty routing table
func NewTable() *Table {
	return &Table{
		routes:           make(map[string][]CompiledRoute),
		routesMiddleware: make(map[string][]CompiledRoute),
		routesAfter:      make(map[string][]CompiledRoute),
		errors:           make(map[string]string),
		cliGroups:        make(map[string][]Binding),
		cliMiddleware:    make(map[string]map[string][]CompiledRoute),
	}
}

// AddRoute appends a main route entry for an HTTP method
func (t *Table) AddRoute(method string, route CompiledRoute) {
	t.routes[method] = append(t.routes[method], route)
}

// AddMiddleware appends a before-phase middleware entry for an HTTP method
func (t *Table) AddMiddleware(method string, route CompiledRoute) {
	t.routesMiddleware[method] = append(t.routesMiddleware[method], route)
}

// AddAfter appends an after-phase middleware entry for an HTTP method
func (t *Table) AddAfter(method string, route CompiledRoute) {
	t.routesAfter[method] = append(t.routesAfter[method], route)
}

// SetErrorHandler binds a fallback handler to a context pattern.
// Map semantics: on key collision the last declaration wins.
func (t *Table) SetErrorHandler(pattern, callback string) {
	t.errors[pattern] = callback
}

// AddBinding appends a deferred CLI command binding to a group
func (t *Table) AddBinding(group string, binding Binding) {
	t.cliGroups[group] = append(t.cliGroups[group], binding)
}

// AddCLIMiddleware appends a CLI middleware entry under a security key.
// The security key is "any" for global CLI middleware or the group name
// for per-group middleware.
func (t *Table) AddCLIMiddleware(security string, route CompiledRoute) {
	if t.cliMiddleware[CLIKey] == nil {
		t.cliMiddleware[CLIKey] = make(map[string][]CompiledRoute)
	}
	t.cliMiddleware[CLIKey][security] = append(t.cliMiddleware[CLIKey][security], route)
}

// Routes returns the main route entries for an HTTP method, insertion order
func (t *Table) Routes(method string) []CompiledRoute {
	return t.routes[method]
}

// MiddlewareBefore returns the before-phase entries for an HTTP method
func (t *Table) MiddlewareBefore(method string) []CompiledRoute {
	return t.routesMiddleware[method]
}

// MiddlewareAfter returns the after-phase entries for an HTTP method
func (t *Table) MiddlewareAfter(method string) []CompiledRoute {
	return t.routesAfter[method]
}

// Sequence returns the full dispatch sequence for a method:
// before-phase middleware, then main routes, then after-phase middleware,
// preserving insertion order within each segment.
func (t *Table) Sequence(method string) []CompiledRoute {
	sequence := make([]CompiledRoute, 0,
		len(t.routesMiddleware[method])+len(t.routes[method])+len(t.routesAfter[method]))
	sequence = append(sequence, t.routesMiddleware[method]...)
	sequence = append(sequence, t.routes[method]...)
	sequence = append(sequence, t.routesAfter[method]...)
	return sequence
}

// ErrorHandler returns the fallback callback bound to a context pattern
func (t *Table) ErrorHandler(pattern string) (string, bool) {
	callback, ok := t.errors[pattern]
	return callback, ok
}

// ErrorHandlers returns a copy of the full error-handler mapping
func (t *Table) ErrorHandlers() map[string]string {
	result := make(map[string]string, len(t.errors))
	for pattern, callback := range t.errors {
		result[pattern] = callback
	}
	return result
}

// CLIGroups returns the names of all registered CLI command groups
func (t *Table) CLIGroups() []string {
	groups := make([]string, 0, len(t.cliGroups))
	for group := range t.cliGroups {
		groups = append(groups, group)
	}
	return groups
}

// Bindings returns the deferred command bindings for a CLI group
func (t *Table) Bindings(group string) []Binding {
	return t.cliGroups[group]
}

// CLIMiddleware returns the CLI middleware entries for a security key
func (t *Table) CLIMiddleware(security string) []CompiledRoute {
	if t.cliMiddleware[CLIKey] == nil {
		return nil
	}
	return t.cliMiddleware[CLIKey][security]
}

// Methods returns every HTTP method that has at least one entry in any bucket
func (t *Table) Methods() []string {
	seen := make(map[string]bool)
	var methods []string
	for _, bucket := range []map[string][]CompiledRoute{t.routesMiddleware, t.routes, t.routesAfter} {
		for method := range bucket {
			if !seen[method] {
				seen[method] = true
				methods = append(methods, method)
			}
		}
	}
	return methods
}

// RouteCount returns the total number of entries across all HTTP buckets
func (t *Table) RouteCount() int {
	count := 0
	for _, bucket := range []map[string][]CompiledRoute{t.routesMiddleware, t.routes, t.routesAfter} {
		for _, entries := range bucket {
			count += len(entries)
		}
	}
	return count
}

// BindingCount returns the total number of deferred CLI bindings
func (t *Table) BindingCount() int {
	count := 0
	for _, bindings := range t.cliGroups {
		count += len(bindings)
	}
	return count
}

// Snapshot returns a deep copy of the table. Long-running servers that
// cache a compiled table across requests should hand out snapshots and
// treat them as immutable.
func (t *Table) Snapshot() *Table {
	snapshot := NewTable()
	for method, entries := range t.routes {
		snapshot.routes[method] = append([]CompiledRoute(nil), entries...)
	}
	for method, entries := range t.routesMiddleware {
		snapshot.routesMiddleware[method] = append([]CompiledRoute(nil), entries...)
	}
	for method, entries := range t.routesAfter {
		snapshot.routesAfter[method] = append([]CompiledRoute(nil), entries...)
	}
	for pattern, callback := range t.errors {
		snapshot.errors[pattern] = callback
	}
	for group, bindings := range t.cliGroups {
		snapshot.cliGroups[group] = append([]Binding(nil), bindings...)
	}
	for key, securities := range t.cliMiddleware {
		snapshot.cliMiddleware[key] = make(map[string][]CompiledRoute, len(securities))
		for security, entries := range securities {
			snapshot.cliMiddleware[key][security] = append([]CompiledRoute(nil), entries...)
		}
	}
	return snapshot
}
