package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luminovang/novaroute/pkg/routing"
)

// GinAdapter dispatches through a Gin engine
type GinAdapter struct {
	engine     *gin.Engine
	dispatcher *routing.Dispatcher
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(e *gin.Engine, dispatcher *routing.Dispatcher) *GinAdapter {
	return &GinAdapter{engine: e, dispatcher: dispatcher}
}

// Mount installs the catch-all dispatch route on the Gin engine
func (ga *GinAdapter) Mount() {
	ga.engine.NoRoute(func(c *gin.Context) {
		err := ga.dispatcher.Serve(&ginRequestContext{context: c})
		if err == routing.ErrNotFound {
			c.String(http.StatusNotFound, "404 Not Found")
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, "500 Internal Server Error")
		}
	})
}

// Engine returns the underlying Gin instance
func (ga *GinAdapter) Engine() *gin.Engine {
	return ga.engine
}

// ginRequestContext implements routing.RequestContext for Gin
type ginRequestContext struct {
	context *gin.Context
}

func (grc *ginRequestContext) Method() string {
	return grc.context.Request.Method
}

func (grc *ginRequestContext) Path() string {
	return grc.context.Request.URL.Path
}

func (grc *ginRequestContext) Param(i int) string {
	return ""
}

func (grc *ginRequestContext) ParamCount() int {
	return 0
}

func (grc *ginRequestContext) String(status int, body string) error {
	grc.context.String(status, "%s", body)
	return nil
}

func (grc *ginRequestContext) JSON(status int, v interface{}) error {
	grc.context.JSON(status, v)
	return nil
}
