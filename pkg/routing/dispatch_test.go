package routing

import (
	"encoding/json"
	"testing"
)

// fakeContext is a minimal RequestContext for dispatcher tests
type fakeContext struct {
	method string
	path   string

	status int
	body   string
}

func (f *fakeContext) Method() string     { return f.method }
func (f *fakeContext) Path() string       { return f.path }
func (f *fakeContext) Param(i int) string { return "" }
func (f *fakeContext) ParamCount() int    { return 0 }

func (f *fakeContext) String(status int, body string) error {
	f.status, f.body = status, body
	return nil
}

func (f *fakeContext) JSON(status int, v interface{}) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.status, f.body = status, string(encoded)
	return nil
}

func newTestDispatcher() (*Dispatcher, *HandlerRegistry) {
	table := NewTable()
	table.AddRoute("GET", CompiledRoute{Pattern: "/users", Callback: "UserController::Index"})
	table.AddRoute("GET", CompiledRoute{Pattern: "/blog/([0-9]+)", Callback: "BlogController::Show"})
	table.AddRoute("GET", CompiledRoute{Pattern: "/blog/.*", Callback: "BlogController::CatchAll"})
	table.AddMiddleware("GET", CompiledRoute{Pattern: "/api/.*", Callback: "AuthMiddleware::Check", Middleware: true})
	table.AddMiddleware("GET", CompiledRoute{Pattern: "/", Callback: "LogMiddleware::Record", Middleware: true})
	table.SetErrorHandler("/api", "APIController::OnError")
	table.SetErrorHandler("/", "HomeController::OnError")

	registry := NewHandlerRegistry()
	for _, callback := range []string{
		"UserController::Index", "BlogController::Show", "BlogController::CatchAll",
		"AuthMiddleware::Check", "LogMiddleware::Record",
		"APIController::OnError", "HomeController::OnError",
	} {
		name := callback
		registry.Register(name, func(ctx RequestContext) error {
			return ctx.String(200, name)
		})
	}
	return NewDispatcher(table, registry), registry
}

func TestResolveHandlerFirstMatchWins(t *testing.T) {
	dispatcher, _ := newTestDispatcher()

	match, ok := dispatcher.ResolveHandler("GET", "/blog/42")
	if !ok {
		t.Fatal("no match for /blog/42")
	}
	// /blog/([0-9]+) precedes /blog/.* in the table, so it wins.
	if match.Route.Callback != "BlogController::Show" {
		t.Errorf("matched %s, want BlogController::Show", match.Route.Callback)
	}
	if len(match.Params) != 1 || match.Params[0] != "42" {
		t.Errorf("params = %v, want [42]", match.Params)
	}

	match, ok = dispatcher.ResolveHandler("GET", "/blog/about")
	if !ok || match.Route.Callback != "BlogController::CatchAll" {
		t.Errorf("fallthrough match = %+v, %v", match, ok)
	}
}

func TestResolveHandlerAnchorsPatterns(t *testing.T) {
	dispatcher, _ := newTestDispatcher()

	if _, ok := dispatcher.ResolveHandler("GET", "/users/extra"); ok {
		t.Error("/users matched a longer path; pattern not anchored")
	}
	if _, ok := dispatcher.ResolveHandler("POST", "/users"); ok {
		t.Error("POST matched a GET-only route")
	}
}

func TestResolveHandlerSkipsUnregisteredCallbacks(t *testing.T) {
	table := NewTable()
	table.AddRoute("GET", CompiledRoute{Pattern: "/users", Callback: "Ghost::Index"})
	table.AddRoute("GET", CompiledRoute{Pattern: "/.*", Callback: "Real::CatchAll"})

	registry := NewHandlerRegistry()
	registry.Register("Real::CatchAll", func(ctx RequestContext) error { return nil })

	match, ok := NewDispatcher(table, registry).ResolveHandler("GET", "/users")
	if !ok || match.Route.Callback != "Real::CatchAll" {
		t.Errorf("match = %+v, %v, want fallthrough past the unregistered callback", match, ok)
	}
}

func TestMiddlewareCollection(t *testing.T) {
	dispatcher, _ := newTestDispatcher()

	matches := dispatcher.Middleware("GET", "/api/users", false)
	if len(matches) != 2 {
		t.Fatalf("middleware for /api/users = %d entries, want 2", len(matches))
	}
	if matches[0].Route.Callback != "AuthMiddleware::Check" || matches[1].Route.Callback != "LogMiddleware::Record" {
		t.Errorf("middleware order = %s, %s", matches[0].Route.Callback, matches[1].Route.Callback)
	}

	// Root-pattern middleware covers paths outside any scoped pattern.
	matches = dispatcher.Middleware("GET", "/users", false)
	if len(matches) != 1 || matches[0].Route.Callback != "LogMiddleware::Record" {
		t.Errorf("middleware for /users = %+v", matches)
	}

	if after := dispatcher.Middleware("GET", "/users", true); len(after) != 0 {
		t.Errorf("after middleware = %+v, want none", after)
	}
}

func TestResolveErrorLongestPatternWins(t *testing.T) {
	dispatcher, _ := newTestDispatcher()

	handler, ok := dispatcher.ResolveError("/api/missing")
	if !ok {
		t.Fatal("no error handler for /api/missing")
	}
	ctx := &fakeContext{}
	if err := handler(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if ctx.body != "APIController::OnError" {
		t.Errorf("resolved %q, want the longer /api context", ctx.body)
	}

	handler, ok = dispatcher.ResolveError("/somewhere/else")
	if !ok {
		t.Fatal("no error handler for /somewhere/else")
	}
	ctx = &fakeContext{}
	_ = handler(ctx)
	if ctx.body != "HomeController::OnError" {
		t.Errorf("resolved %q, want the root context", ctx.body)
	}
}

func TestResolveErrorEqualLengthTieBreaksLexically(t *testing.T) {
	table := NewTable()
	table.SetErrorHandler("api/", "Late::OnError")
	table.SetErrorHandler("/api", "Early::OnError")

	registry := NewHandlerRegistry()
	for _, callback := range []string{"Late::OnError", "Early::OnError"} {
		name := callback
		registry.Register(name, func(ctx RequestContext) error {
			return ctx.String(500, name)
		})
	}
	dispatcher := NewDispatcher(table, registry)

	// Both patterns govern the path and have the same length; the
	// lexically smaller one must win on every run.
	for i := 0; i < 10; i++ {
		handler, ok := dispatcher.ResolveError("/api/users")
		if !ok {
			t.Fatal("no error handler for /api/users")
		}
		ctx := &fakeContext{}
		_ = handler(ctx)
		if ctx.body != "Early::OnError" {
			t.Fatalf("resolved %q, want the lexically smaller /api pattern", ctx.body)
		}
	}
}

func TestServePipeline(t *testing.T) {
	table := NewTable()
	table.AddMiddleware("GET", CompiledRoute{Pattern: "/", Callback: "M::Before", Middleware: true})
	table.AddRoute("GET", CompiledRoute{Pattern: "/users", Callback: "C::Index"})
	table.AddAfter("GET", CompiledRoute{Pattern: "/", Callback: "M::After"})

	var order []string
	registry := NewHandlerRegistry()
	for _, callback := range []string{"M::Before", "C::Index", "M::After"} {
		name := callback
		registry.Register(name, func(ctx RequestContext) error {
			order = append(order, name)
			return nil
		})
	}

	dispatcher := NewDispatcher(table, registry)
	if err := dispatcher.Serve(&fakeContext{method: "GET", path: "/users"}); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	if len(order) != 3 || order[0] != "M::Before" || order[1] != "C::Index" || order[2] != "M::After" {
		t.Errorf("pipeline order = %v", order)
	}
}

func TestServeFallsBackToErrorHandler(t *testing.T) {
	dispatcher, _ := newTestDispatcher()

	ctx := &fakeContext{method: "GET", path: "/api/nope"}
	if err := dispatcher.Serve(ctx); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	if ctx.body != "APIController::OnError" {
		t.Errorf("fallback ran %q", ctx.body)
	}
}

func TestServeNotFound(t *testing.T) {
	dispatcher := NewDispatcher(NewTable(), NewHandlerRegistry())

	err := dispatcher.Serve(&fakeContext{method: "GET", path: "/nope"})
	if err != ErrNotFound {
		t.Errorf("Serve = %v, want ErrNotFound", err)
	}
}

func TestWithParams(t *testing.T) {
	base := &fakeContext{method: "GET", path: "/blog/42"}

	if WithParams(base, nil) != RequestContext(base) {
		t.Error("WithParams without params should return the original context")
	}

	wrapped := WithParams(base, []string{"42", "extra"})
	if wrapped.Param(0) != "42" || wrapped.Param(1) != "extra" {
		t.Errorf("params = %q, %q", wrapped.Param(0), wrapped.Param(1))
	}
	if wrapped.Param(2) != "" || wrapped.Param(-1) != "" {
		t.Error("out-of-range params should be empty")
	}
	if wrapped.ParamCount() != 2 {
		t.Errorf("ParamCount = %d", wrapped.ParamCount())
	}
	if wrapped.Path() != "/blog/42" {
		t.Error("wrapped context lost the underlying path")
	}
}
