package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteFiles writes every path -> content pair, creating parent
// directories. It fails the test on the first error.
func WriteFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for path, content := range files {
		WriteFile(t, fsys, path, content, 0644)
	}
}

// WriteFile writes a single file with the given mode.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string, mode os.FileMode) string {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755), "mkdir for %s", path)
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), mode), "write %s", path)
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	content, err := afero.ReadFile(fsys, path)
	require.NoError(t, err, "read %s", path)
	return string(content)
}

// FileExists reports whether path exists and is not a directory.
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path is a directory.
func DirExists(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}

// FilesUnder lists the regular files below root, relative and sorted. A
// missing root gives an empty list.
func FilesUnder(t *testing.T, fsys afero.Fs, root string) []string {
	t.Helper()

	if !DirExists(fsys, root) {
		return nil
	}

	var out []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys afero.Fs, path, expected string) {
	t.Helper()

	if !FileExists(fsys, path) {
		t.Fatalf("File %s does not exist", path)
	}
	assert.Equal(t, expected, ReadFile(t, fsys, path), "content of %s", path)
}

// AssertNoFile checks that nothing exists at path.
func AssertNoFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	if _, err := fsys.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

// AssertMode checks the permission bits of path.
func AssertMode(t *testing.T, fsys afero.Fs, path string, mode os.FileMode) {
	t.Helper()

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, mode.String(), info.Mode().Perm().String(), "mode of %s", path)
}
