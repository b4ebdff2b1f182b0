package routing

import (
	"fmt"
	"testing"
)

func TestHandlerRegistry(t *testing.T) {
	registry := NewHandlerRegistry()

	if _, ok := registry.Resolve("UserController::Index"); ok {
		t.Error("empty registry resolved a handler")
	}

	registry.Register("UserController::Index", func(ctx RequestContext) error {
		return ctx.String(200, "users")
	})
	handler, ok := registry.Resolve("UserController::Index")
	if !ok {
		t.Fatal("registered handler not resolved")
	}

	ctx := &fakeContext{}
	if err := handler(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if ctx.status != 200 || ctx.body != "users" {
		t.Errorf("response = %d %q", ctx.status, ctx.body)
	}
}

func TestCommandRegistryRun(t *testing.T) {
	handlers := NewHandlerRegistry()
	var received []string
	handlers.RegisterCommand("JobCommand::RunDaily", func(args []string) error {
		received = args
		return nil
	})
	handlers.RegisterCommand("JobCommand::Fail", func(args []string) error {
		return fmt.Errorf("job failed")
	})

	commands := NewCommandRegistry(handlers)
	commands.Register("jobs", "run-daily", "JobCommand::RunDaily")
	commands.Register("jobs", "fail", "JobCommand::Fail")
	commands.Register("jobs", "ghost", "JobCommand::Unregistered")

	ran, err := commands.Run("jobs", "run-daily", []string{"--force"})
	if !ran || err != nil {
		t.Fatalf("Run = %v, %v", ran, err)
	}
	if len(received) != 1 || received[0] != "--force" {
		t.Errorf("args = %v", received)
	}

	ran, err = commands.Run("jobs", "fail", nil)
	if !ran || err == nil {
		t.Errorf("failing command: ran=%v err=%v", ran, err)
	}

	// Unknown pattern and unresolvable callback both report not-run.
	if ran, _ := commands.Run("jobs", "missing", nil); ran {
		t.Error("unknown pattern reported as run")
	}
	if ran, _ := commands.Run("jobs", "ghost", nil); ran {
		t.Error("unresolvable callback reported as run")
	}
	if ran, _ := commands.Run("ops", "run-daily", nil); ran {
		t.Error("unknown group reported as run")
	}
}

func TestCommandRegistryLookup(t *testing.T) {
	commands := NewCommandRegistry(NewHandlerRegistry())
	commands.Register("jobs", "run-daily", "JobCommand::RunDaily")

	if callback, ok := commands.Lookup("jobs", "run-daily"); !ok || callback != "JobCommand::RunDaily" {
		t.Errorf("Lookup = %q, %v", callback, ok)
	}
	if _, ok := commands.Lookup("jobs", "missing"); ok {
		t.Error("Lookup found an unbound pattern")
	}
}
