package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luminovang/novaroute/internal/errors"
)

// BootstrapFile is the sentinel filename reserved for the application
// bootstrap type; it never declares routable types and is skipped.
const BootstrapFile = "application.go"

// FileDescriptor identifies one candidate source file
type FileDescriptor struct {
	Base string // basename of the file
	Path string // full path to the file
}

// DirectoryScanner enumerates candidate source files beneath a root path.
// The walk is recursive, follows symbolic links, and skips files that
// cannot be read rather than aborting the scan.
type DirectoryScanner struct {
	// OnSkip is invoked for every file or directory skipped because of a
	// read error. Nil means skip silently.
	OnSkip func(path string, err error)

	visited map[string]bool // resolved directories already walked, guards symlink cycles
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// Scan walks the tree beneath root and returns candidate file
// descriptors sorted by path. Sorting makes compilation order
// reproducible across platforms; raw directory iteration order is not.
func (s *DirectoryScanner) Scan(root string) ([]FileDescriptor, error) {
	cleanRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", root, err)
	}

	info, err := os.Stat(cleanRoot)
	if err != nil {
		return nil, errors.NewNotFoundError(root)
	}
	if !info.IsDir() {
		return nil, errors.NewNotFoundError(root).WithSuggestion("The scan root must be a directory")
	}

	s.visited = make(map[string]bool)

	var files []FileDescriptor
	s.walk(cleanRoot, &files)

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// walk recursively collects candidate files. Read errors on individual
// entries are non-fatal; the rest of the tree is still scanned.
func (s *DirectoryScanner) walk(dir string, files *[]FileDescriptor) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		s.skip(dir, err)
		return
	}
	if s.visited[resolved] {
		return
	}
	s.visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.skip(dir, err)
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(full)
			if err != nil {
				s.skip(full, err)
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if s.skipDirectory(entry.Name()) {
				continue
			}
			s.walk(full, files)
			continue
		}

		if s.includeFile(entry.Name()) {
			*files = append(*files, FileDescriptor{Base: entry.Name(), Path: full})
		}
	}
}

// includeFile filters for plausibly route-declaring source files
func (s *DirectoryScanner) includeFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		name != BootstrapFile
}

// skipDirectory skips hidden and well-known non-source directories
func (s *DirectoryScanner) skipDirectory(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "vendor", "node_modules", "testdata", "build", "dist":
		return true
	}
	return false
}

func (s *DirectoryScanner) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}
