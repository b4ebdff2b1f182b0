package scanner

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleResolver resolves the module path governing a scan root so that
// discovered types can carry module-qualified names.
type ModuleResolver struct {
	modulePath string // cached module path
	moduleRoot string // directory containing the go.mod
}

// NewModuleResolver creates a resolver anchored at the given directory.
// The nearest go.mod walking upward wins; when none exists, qualified
// names fall back to bare package names.
func NewModuleResolver(startDir string) *ModuleResolver {
	r := &ModuleResolver{}
	r.modulePath, r.moduleRoot = findModule(startDir)
	return r
}

// QualifiedName builds the module-qualified name for a type declared in
// the given file, e.g. "example.com/app/web.BlogController".
func (r *ModuleResolver) QualifiedName(file, pkgName, typeName string) string {
	if r.modulePath == "" {
		return pkgName + "." + typeName
	}

	dir := filepath.Dir(file)
	rel, err := filepath.Rel(r.moduleRoot, dir)
	if err != nil || rel == "." {
		return r.modulePath + "." + typeName
	}
	return r.modulePath + "/" + filepath.ToSlash(rel) + "." + typeName
}

// ModulePath returns the resolved module path, empty when no go.mod was found
func (r *ModuleResolver) ModulePath() string {
	return r.modulePath
}

// findModule walks upward from startDir looking for a parseable go.mod
func findModule(startDir string) (path, root string) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", ""
	}

	for {
		goMod := filepath.Join(dir, "go.mod")
		if content, err := os.ReadFile(goMod); err == nil {
			parsed, err := modfile.Parse(goMod, content, nil)
			if err == nil && parsed.Module != nil {
				return parsed.Module.Mod.Path, dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}
