package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newton-physics/kernelint/internal/discover"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFiles_FindsPythonFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.py"), "b = 1\n")
	writeFile(t, filepath.Join(root, "a.py"), "a = 1\n")
	writeFile(t, filepath.Join(root, "kernels", "c.py"), "c = 1\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not python\n")

	files, err := discover.Files(root)
	require.NoError(t, err)

	expected := []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "b.py"),
		filepath.Join(root, "kernels", "c.py"),
	}
	assert.Equal(t, expected, files)
}

func TestFiles_SkipsDotAndGeneratedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, ".venv", "lib.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, ".git", "hook.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "__pycache__", "cached.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "venv", "pkg.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "build", "gen.py"), "x = 1\n")

	files, err := discover.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep.py")}, files)
}

func TestFiles_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\nscratch.py\n")
	writeFile(t, filepath.Join(root, "keep.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "scratch.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "generated", "bindings.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "sub", "scratch.py"), "x = 1\n")

	files, err := discover.Files(root)
	require.NoError(t, err)

	expected := []string{
		filepath.Join(root, "keep.py"),
	}
	assert.Equal(t, expected, files)
}

func TestFiles_NoGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "only.py"), "x = 1\n")

	files, err := discover.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "only.py")}, files)
}

func TestFiles_MissingRoot(t *testing.T) {
	root := t.TempDir()

	_, err := discover.Files(filepath.Join(root, "does-not-exist"))
	assert.Error(t, err)
}

func TestFiles_RootIsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "single.py")
	writeFile(t, path, "x = 1\n")

	files, err := discover.Files(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}
