package adapters

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/luminovang/novaroute/pkg/routing"
)

func newFiberFixture() *fiber.App {
	table := routing.NewTable()
	table.AddRoute("GET", routing.CompiledRoute{Pattern: "/users", Callback: "UserController::Index"})

	registry := routing.NewHandlerRegistry()
	registry.Register("UserController::Index", func(ctx routing.RequestContext) error {
		return ctx.String(http.StatusOK, "user list")
	})

	app := fiber.New()
	NewFiberAdapter(app, routing.NewDispatcher(table, registry)).Mount()
	return app
}

func TestFiberAdapterDispatch(t *testing.T) {
	app := newFiberFixture()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "user list" {
		t.Errorf("GET /users = %d %q", resp.StatusCode, body)
	}
}

func TestFiberAdapterNotFound(t *testing.T) {
	app := newFiberFixture()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nowhere status = %d, want 404", resp.StatusCode)
	}
}
