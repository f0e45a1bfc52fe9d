package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "github.com/mouse-blink/turretlint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "O0001.nc"), "N1 G00;\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "O0002.nc"), "N1 G00;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "O0002.nc")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "O0001.nc")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "O0002.nc")
		writeTestFile(t, child, "N1 G00;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	t.Run("from disk", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		path := filepath.Join(t.TempDir(), "O0001.nc")
		content := "O0001\nN1000 G109 L1;\n"
		writeTestFile(t, path, content)

		got, err := adapter.ReadFile(m.Path(path))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("from stdin", func(t *testing.T) {
		adapter := &LocalSourceFSAdapter{stdin: strings.NewReader("N1 M30;\n")}

		got, err := adapter.ReadFile(m.StdinPath)
		require.NoError(t, err)
		assert.Equal(t, "N1 M30;\n", string(got))
	})
}

func TestLocalSourceFSAdapter_WriteAndMkdir(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := adapter.JoinPath(t.TempDir(), "out", "streams")
	require.NoError(t, adapter.MkdirAll(dir))

	file := adapter.JoinPath(string(dir), "O0001.upper.nc")
	require.NoError(t, adapter.WriteFile(file, []byte("N1000 G109 L1;\n"), 0o600))

	info, err := adapter.FileInfo(file)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	t.Run("single directory is not recursive", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		programs, err := adapter.Get([]m.Path{m.Path(examplePath(t, "integrex"))}, nil)
		require.NoError(t, err)

		origins := programOrigins(programs)
		assert.Len(t, origins, 2)
		assert.True(t, containsPath(origins, examplePath(t, "integrex", "O0001.nc")))
		assert.True(t, containsPath(origins, examplePath(t, "integrex", "O0002.nc")))
	})

	t.Run("recursive suffix walks subdirectories", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		programs, err := adapter.Get([]m.Path{m.Path(examplePath(t, "integrex") + "/...")}, nil)
		require.NoError(t, err)

		origins := programOrigins(programs)
		assert.Len(t, origins, 3)
		assert.True(t, containsPath(origins, examplePath(t, "integrex", "milling", "O0003.nc")))
	})

	t.Run("explicit file ignores extension filter and is loaded once", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		path := filepath.Join(t.TempDir(), "part.txt")
		content := []byte("N1000 G109 L1;\n")
		writeTestBytes(t, path, content)

		programs, err := adapter.Get([]m.Path{m.Path(path), m.Path(path)}, []string{".nc"})
		require.NoError(t, err)
		require.Len(t, programs, 1)

		assert.Equal(t, m.Path(path), programs[0].Origin)
		assert.Equal(t, hashBytes(content), programs[0].Hash)
		assert.Equal(t, string(content), programs[0].Text)
	})

	t.Run("extension filter is case insensitive", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "O0001.NC"), "N1 M30;\n")
		writeTestFile(t, filepath.Join(root, "notes.md"), "# notes\n")

		programs, err := adapter.Get([]m.Path{m.Path(root)}, []string{".nc"})
		require.NoError(t, err)
		require.Len(t, programs, 1)
		assert.Equal(t, m.Path(filepath.Join(root, "O0001.NC")), programs[0].Origin)
	})

	t.Run("no programs", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.Get([]m.Path{m.Path(t.TempDir())}, nil)
		require.ErrorIs(t, err, ErrNoPrograms)
	})

	t.Run("missing root", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("stdin root", func(t *testing.T) {
		adapter := &LocalSourceFSAdapter{stdin: strings.NewReader("N1000 G109 L2;\n")}

		programs, err := adapter.Get([]m.Path{m.StdinPath}, nil)
		require.NoError(t, err)
		require.Len(t, programs, 1)
		assert.Equal(t, m.StdinPath, programs[0].Origin)
	})
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{in: "./...", path: ".", recursive: true},
		{in: "...", path: ".", recursive: true},
		{in: "programs/...", path: "programs", recursive: true},
		{in: "programs", path: "programs", recursive: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, recursive := parseRootPath(tt.in)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func programOrigins(programs []m.Program) []string {
	origins := make([]string, 0, len(programs))
	for _, p := range programs {
		origins = append(origins, string(p.Origin))
	}

	return origins
}

func hashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := filepath.Clean(filepath.Join(wd, "..", ".."))
	parts := append([]string{repoRoot, "examples"}, elem...)

	return filepath.Join(parts...)
}
