package routing

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Match is the result of resolving a request path against the table
type Match struct {
	Route   CompiledRoute
	Handler HandlerFunc
	Params  []string // regex capture groups extracted from the path
}

// Dispatcher answers "which entry handles this request" over a compiled
// table with first-match-wins semantics. Middleware-before entries are
// consulted first, then main routes, then middleware-after, in the
// table's insertion order.
type Dispatcher struct {
	table    *Table
	registry *HandlerRegistry

	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

// NewDispatcher creates a dispatcher over an immutable table snapshot
func NewDispatcher(table *Table, registry *HandlerRegistry) *Dispatcher {
	return &Dispatcher{
		table:    table,
		registry: registry,
		cache:    make(map[string]*regexp.Regexp),
	}
}

// Table returns the table the dispatcher reads from
func (d *Dispatcher) Table() *Table {
	return d.table
}

// ResolveHandler finds the first main-route entry matching method and
// path and resolves its handler. Middleware entries are skipped; use
// Middleware to collect those.
func (d *Dispatcher) ResolveHandler(method, path string) (*Match, bool) {
	for _, route := range d.table.Routes(method) {
		if params, ok := d.match(route.Pattern, path); ok {
			handler, registered := d.registry.Resolve(route.Callback)
			if !registered {
				continue
			}
			return &Match{Route: route, Handler: handler, Params: params}, true
		}
	}
	return nil, false
}

// Middleware collects the matching before- or after-phase entries for a
// request, preserving table order.
func (d *Dispatcher) Middleware(method, path string, after bool) []Match {
	entries := d.table.MiddlewareBefore(method)
	if after {
		entries = d.table.MiddlewareAfter(method)
	}

	var matches []Match
	for _, route := range entries {
		var params []string
		ok := strings.TrimLeft(route.Pattern, "/") == "" // root-pattern middleware covers every path
		if !ok {
			params, ok = d.match(route.Pattern, path)
		}
		if !ok {
			continue
		}
		handler, registered := d.registry.Resolve(route.Callback)
		if !registered {
			continue
		}
		matches = append(matches, Match{Route: route, Handler: handler, Params: params})
	}
	return matches
}

// ResolveError finds the fallback error handler whose context pattern
// governs the given path. The longest matching pattern wins; equal
// lengths tie-break lexically so resolution stays deterministic.
func (d *Dispatcher) ResolveError(path string) (HandlerFunc, bool) {
	var bestPattern string
	var bestCallback string
	found := false

	for pattern, callback := range d.table.ErrorHandlers() {
		if !d.governs(pattern, path) {
			continue
		}
		better := len(pattern) > len(bestPattern) ||
			(len(pattern) == len(bestPattern) && pattern < bestPattern)
		if !found || better {
			bestPattern = pattern
			bestCallback = callback
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return d.registry.Resolve(bestCallback)
}

// match tests a compiled pattern against a request path and extracts
// capture groups. Both sides are compared with leading slashes trimmed
// so base-group-prefixed patterns line up with absolute request paths.
func (d *Dispatcher) match(pattern, path string) ([]string, bool) {
	re, err := d.compile(pattern)
	if err != nil {
		return nil, false
	}

	groups := re.FindStringSubmatch(strings.TrimLeft(path, "/"))
	if groups == nil {
		return nil, false
	}
	return groups[1:], true
}

// governs reports whether a context pattern covers a request path
func (d *Dispatcher) governs(pattern, path string) bool {
	trimmed := strings.TrimLeft(pattern, "/")
	if trimmed == "" {
		return true
	}
	return strings.HasPrefix(strings.TrimLeft(path, "/"), trimmed)
}

// compile anchors and caches a route pattern
func (d *Dispatcher) compile(pattern string) (*regexp.Regexp, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if re, ok := d.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile("^" + strings.TrimLeft(pattern, "/") + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}
	d.cache[pattern] = re
	return re, nil
}
