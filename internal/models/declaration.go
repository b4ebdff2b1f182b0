package models

import (
	"fmt"
	"strings"

	"github.com/luminovang/novaroute/internal/errors"
)

// MiddlewarePhase describes where a route runs relative to the main
// request pipeline.
type MiddlewarePhase int

const (
	PhaseNone MiddlewarePhase = iota
	PhaseBefore
	PhaseAfter
	PhaseAny // global CLI middleware; not legal on HTTP declarations
)

// String returns the string representation of the phase
func (p MiddlewarePhase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	case PhaseAny:
		return "any"
	default:
		return "none"
	}
}

// ParseMiddlewarePhase converts an annotation value to a MiddlewarePhase
func ParseMiddlewarePhase(s string) (MiddlewarePhase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PhaseNone, nil
	case "before":
		return PhaseBefore, nil
	case "after":
		return PhaseAfter, nil
	case "any":
		return PhaseAny, nil
	default:
		return PhaseNone, fmt.Errorf("unknown middleware phase: %s", s)
	}
}

// Callback is a "TypeName::MethodName" handler reference
type Callback struct {
	Type   string // declaring type name
	Method string // method name on the type
}

// ParseCallback parses a "TypeName::MethodName" reference
func ParseCallback(s string) (Callback, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Callback{}, fmt.Errorf("invalid callback reference %q, expected Type::Method", s)
	}
	return Callback{Type: parts[0], Method: parts[1]}, nil
}

// String formats the callback as "TypeName::MethodName"
func (c Callback) String() string {
	return c.Type + "::" + c.Method
}

// IsZero reports whether the callback reference is unset
func (c Callback) IsZero() bool {
	return c.Type == "" && c.Method == ""
}

// RouteDeclaration is one HTTP or CLI route binding declared on a
// controller method.
type RouteDeclaration struct {
	Pattern        string          // URI pattern (regex-capable) or CLI command pattern
	Methods        []string        // HTTP verbs, default {GET}; unused for CLI
	IsErrorHandler bool            // fallback error route, not a normal route
	Group          string          // CLI command group; empty means HTTP route
	Phase          MiddlewarePhase // middleware phase, PhaseNone for plain handlers

	Location errors.SourceLocation // where the declaration appears
}

// IsCLI reports whether this declaration targets the CLI dispatcher
func (d RouteDeclaration) IsCLI() bool {
	return d.Group != ""
}

// IsMiddleware reports whether this declaration is a middleware route
func (d RouteDeclaration) IsMiddleware() bool {
	return d.Phase != PhaseNone
}

// Validate checks the structural invariants of a declaration.
// A declaration cannot be both an error route and a middleware route,
// and PhaseAny is reserved for CLI declarations.
func (d RouteDeclaration) Validate() error {
	fail := func(field, reason string) error {
		err := errors.NewValidationError(field, reason)
		err.Loc = d.Location
		return err
	}
	if strings.TrimSpace(d.Pattern) == "" {
		return fail("pattern", "pattern must not be empty")
	}
	if d.IsErrorHandler && d.IsMiddleware() {
		return fail("declaration", "route cannot be both an error handler and a middleware")
	}
	if d.Phase == PhaseAny && !d.IsCLI() {
		return fail("middleware", "phase 'any' is only valid for CLI group declarations")
	}
	if !d.IsCLI() && len(d.Methods) == 0 {
		return fail("methods", "HTTP declaration must answer at least one method")
	}
	return nil
}

// ContextDeclaration is one class-level routing context binding
type ContextDeclaration struct {
	Name    string   // context identifier, default "web"
	Pattern string   // URI prefix pattern this context governs
	OnError Callback // fallback handler; zero value means none

	Location errors.SourceLocation
}

// HasErrorHandler reports whether this context contributes an error entry
func (c ContextDeclaration) HasErrorHandler() bool {
	return !c.OnError.IsZero()
}
