package adapters

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/luminovang/novaroute/pkg/routing"
)

func newGinFixture() *gin.Engine {
	table := routing.NewTable()
	table.AddRoute("GET", routing.CompiledRoute{Pattern: "/users", Callback: "UserController::Index"})

	registry := routing.NewHandlerRegistry()
	registry.Register("UserController::Index", func(ctx routing.RequestContext) error {
		return ctx.String(http.StatusOK, "user list")
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewGinAdapter(engine, routing.NewDispatcher(table, registry)).Mount()
	return engine
}

func TestGinAdapterDispatch(t *testing.T) {
	engine := newGinFixture()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))
	if recorder.Code != http.StatusOK || recorder.Body.String() != "user list" {
		t.Errorf("GET /users = %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestGinAdapterNotFound(t *testing.T) {
	engine := newGinFixture()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("GET /nowhere status = %d, want 404", recorder.Code)
	}
}
