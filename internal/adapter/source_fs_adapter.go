// Package adapter contains filesystem and report storage adapters for the turretlint CLI.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// ErrNoPrograms is returned by Get when no program file matched the roots.
var ErrNoPrograms = errors.New("no NC program files found")

// DefaultExtensions are the file extensions treated as NC programs.
var DefaultExtensions = []string{".nc", ".eia", ".mpf", ".min"}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when loading programs and writing split streams. It hides direct
// `os` access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects program files under roots whose extension is listed.
	Get(roots []m.Path, extensions []string) ([]m.Program, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents. The path "-"
	// reads standard input.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the disk backed SourceFSAdapter.
type LocalSourceFSAdapter struct {
	stdin io.Reader
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{stdin: os.Stdin}
}

// Get loads program files for the provided roots. Roots may be files,
// directories, "dir/..." for a recursive walk, or "-" for standard input.
// Explicit file roots are loaded regardless of extension.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, extensions []string) ([]m.Program, error) {
	if len(roots) == 0 {
		roots = []m.Path{"."}
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	seen := make(map[string]struct{})

	var programs []m.Program

	add := func(path string) error {
		if _, exists := seen[path]; exists {
			return nil
		}

		seen[path] = struct{}{}

		program, err := a.load(m.Path(path))
		if err != nil {
			return err
		}

		programs = append(programs, program)

		return nil
	}

	for _, root := range roots {
		if root == m.StdinPath {
			if err := add(string(m.StdinPath)); err != nil {
				return nil, err
			}

			continue
		}

		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !hasExtension(path, extensions) {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	if len(programs) == 0 {
		return nil, ErrNoPrograms
	}

	return programs, nil
}

func (a *LocalSourceFSAdapter) load(path m.Path) (m.Program, error) {
	content, err := a.ReadFile(path)
	if err != nil {
		return m.Program{}, fmt.Errorf("read %s: %w", path, err)
	}

	return m.Program{
		Origin: path,
		Hash:   fmt.Sprintf("%x", sha256.Sum256(content)),
		Text:   string(content),
	}, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk, or from stdin for "-".
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	if path == m.StdinPath {
		return io.ReadAll(a.stdin)
	}

	// #nosec G304 - reading user supplied programs is the purpose of this tool
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// MkdirAll creates path and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}

	return false
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
