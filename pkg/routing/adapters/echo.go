// Package adapters mounts a compiled novaroute table onto the common Go
// web frameworks. Each adapter installs a catch-all handler that runs
// the routing dispatcher against the incoming request.
package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luminovang/novaroute/pkg/routing"
)

// EchoAdapter dispatches through an Echo v4 engine
type EchoAdapter struct {
	engine     *echo.Echo
	dispatcher *routing.Dispatcher
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo, dispatcher *routing.Dispatcher) *EchoAdapter {
	return &EchoAdapter{engine: e, dispatcher: dispatcher}
}

// Mount installs the catch-all dispatch route on the Echo engine
func (ea *EchoAdapter) Mount() {
	ea.engine.Any("/*", func(c echo.Context) error {
		err := ea.dispatcher.Serve(&echoRequestContext{context: c})
		if err == routing.ErrNotFound {
			return c.String(http.StatusNotFound, "404 Not Found")
		}
		return err
	})
}

// Engine returns the underlying Echo instance
func (ea *EchoAdapter) Engine() *echo.Echo {
	return ea.engine
}

// echoRequestContext implements routing.RequestContext for Echo
type echoRequestContext struct {
	context echo.Context
}

func (erc *echoRequestContext) Method() string {
	return erc.context.Request().Method
}

func (erc *echoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

func (erc *echoRequestContext) Param(i int) string {
	return ""
}

func (erc *echoRequestContext) ParamCount() int {
	return 0
}

func (erc *echoRequestContext) String(status int, body string) error {
	return erc.context.String(status, body)
}

func (erc *echoRequestContext) JSON(status int, v interface{}) error {
	return erc.context.JSON(status, v)
}
