package routing

import "errors"

// ErrNotFound is returned by Serve when neither a route nor a fallback
// error handler matches the request. Adapters translate it to a 404.
var ErrNotFound = errors.New("routing: no matching route")

// Serve runs the full dispatch sequence for one request: before-phase
// middleware, the first matching main route, then after-phase middleware.
// When nothing matches, the governing context's fallback error handler
// runs instead; without one, ErrNotFound is returned.
func (d *Dispatcher) Serve(ctx RequestContext) error {
	method, path := ctx.Method(), ctx.Path()

	for _, m := range d.Middleware(method, path, false) {
		if err := m.Handler(WithParams(ctx, m.Params)); err != nil {
			return err
		}
	}

	match, ok := d.ResolveHandler(method, path)
	if !ok {
		if fallback, ok := d.ResolveError(path); ok {
			return fallback(ctx)
		}
		return ErrNotFound
	}
	if err := match.Handler(WithParams(ctx, match.Params)); err != nil {
		return err
	}

	for _, m := range d.Middleware(method, path, true) {
		if err := m.Handler(WithParams(ctx, m.Params)); err != nil {
			return err
		}
	}
	return nil
}

// WithParams overlays regex capture groups onto a request context
func WithParams(ctx RequestContext, params []string) RequestContext {
	if len(params) == 0 {
		return ctx
	}
	return &paramContext{RequestContext: ctx, params: params}
}

type paramContext struct {
	RequestContext
	params []string
}

func (p *paramContext) Param(i int) string {
	if i < 0 || i >= len(p.params) {
		return ""
	}
	return p.params[i]
}

func (p *paramContext) ParamCount() int {
	return len(p.params)
}
