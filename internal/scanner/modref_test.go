package scanner

import (
	"path/filepath"
	"testing"
)

func TestQualifiedNameWithModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/app\n\ngo 1.25\n")
	writeFile(t, dir, "web/blog_controller.go", "package web\n")

	resolver := NewModuleResolver(dir)
	if resolver.ModulePath() != "example.com/app" {
		t.Fatalf("ModulePath() = %q", resolver.ModulePath())
	}

	got := resolver.QualifiedName(filepath.Join(dir, "web", "blog_controller.go"), "web", "BlogController")
	if got != "example.com/app/web.BlogController" {
		t.Errorf("QualifiedName = %q", got)
	}

	rootLevel := resolver.QualifiedName(filepath.Join(dir, "main.go"), "main", "App")
	if rootLevel != "example.com/app.App" {
		t.Errorf("root-level QualifiedName = %q", rootLevel)
	}
}

func TestQualifiedNameNearestModuleWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/outer\n")
	writeFile(t, dir, "inner/go.mod", "module example.com/inner\n")
	writeFile(t, dir, "inner/web/controller.go", "package web\n")

	resolver := NewModuleResolver(filepath.Join(dir, "inner", "web"))
	if resolver.ModulePath() != "example.com/inner" {
		t.Errorf("ModulePath() = %q, want nearest module", resolver.ModulePath())
	}
}

func TestQualifiedNameWithoutModule(t *testing.T) {
	resolver := &ModuleResolver{}
	got := resolver.QualifiedName("/anywhere/web/controller.go", "web", "BlogController")
	if got != "web.BlogController" {
		t.Errorf("QualifiedName fallback = %q", got)
	}
}
