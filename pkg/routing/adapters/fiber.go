package adapters

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/luminovang/novaroute/pkg/routing"
)

// FiberAdapter dispatches through a Fiber v2 engine
type FiberAdapter struct {
	app        *fiber.App
	dispatcher *routing.Dispatcher
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter(app *fiber.App, dispatcher *routing.Dispatcher) *FiberAdapter {
	return &FiberAdapter{app: app, dispatcher: dispatcher}
}

// Mount installs the catch-all dispatch route on the Fiber app
func (fa *FiberAdapter) Mount() {
	fa.app.All("/*", func(c *fiber.Ctx) error {
		err := fa.dispatcher.Serve(&fiberRequestContext{context: c})
		if err == routing.ErrNotFound {
			return c.Status(http.StatusNotFound).SendString("404 Not Found")
		}
		return err
	})
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

// fiberRequestContext implements routing.RequestContext for Fiber
type fiberRequestContext struct {
	context *fiber.Ctx
}

func (frc *fiberRequestContext) Method() string {
	return frc.context.Method()
}

func (frc *fiberRequestContext) Path() string {
	return frc.context.Path()
}

func (frc *fiberRequestContext) Param(i int) string {
	return ""
}

func (frc *fiberRequestContext) ParamCount() int {
	return 0
}

func (frc *fiberRequestContext) String(status int, body string) error {
	return frc.context.Status(status).SendString(body)
}

func (frc *fiberRequestContext) JSON(status int, v interface{}) error {
	return frc.context.Status(status).JSON(v)
}
