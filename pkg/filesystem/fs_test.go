package filesystem

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
}

func TestListFiles(t *testing.T) {
	fsys := NewMemory()
	seed(t, fsys, map[string]string{
		"/pkg/b.txt":          "b",
		"/pkg/a.txt":          "a",
		"/pkg/conf.d/z.fish":  "z",
		"/pkg/conf.d/old.bak": "old",
		"/pkg/skipme/ignored": "x",
		"/pkg/.dotman.toml":   "",
		"/other/not-included": "",
	})

	files, err := ListFiles(fsys, "/pkg", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".dotman.toml", "a.txt", "b.txt", "conf.d/old.bak", "conf.d/z.fish", "skipme/ignored"}, files)

	skip := func(rel string) bool {
		return rel == "skipme" || filepath.Ext(rel) == ".bak"
	}
	files, err = ListFiles(fsys, "/pkg", skip)
	require.NoError(t, err)
	assert.Equal(t, []string{".dotman.toml", "a.txt", "b.txt", "conf.d/z.fish"}, files)
}

func TestWalkFilesStop(t *testing.T) {
	fsys := NewMemory()
	seed(t, fsys, map[string]string{"/pkg/a": "", "/pkg/b": "", "/pkg/c": ""})

	var seen []string
	err := WalkFiles(fsys, "/pkg", nil, func(rel string, _ fs.FileInfo) error {
		seen = append(seen, rel)
		if rel == "b" {
			return StopWalk()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestWalkFilesMissingRoot(t *testing.T) {
	_, err := ListFiles(NewMemory(), "/nope", nil)
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	fsys := NewMemory()
	seed(t, fsys, map[string]string{"/src/file": "content", "/dst/file": "old content that is longer"})
	require.NoError(t, fsys.Chmod("/src/file", 0600))
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, fsys.Chtimes("/src/file", past, past))

	require.NoError(t, CopyFile(fsys, "/src/file", "/dst/file", false))
	data, err := afero.ReadFile(fsys, "/dst/file")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := fsys.Stat("/dst/file")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().After(past))

	require.NoError(t, CopyFile(fsys, "/src/file", "/dst/kept", true))
	info, err = fsys.Stat("/dst/kept")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/src/dir", 0755))
	assert.Error(t, CopyFile(fsys, "/src/dir", "/dst", false))
}

func TestPredicates(t *testing.T) {
	fsys := NewMemory()
	seed(t, fsys, map[string]string{"/a/file": ""})

	assert.True(t, IsFile(fsys, "/a/file"))
	assert.False(t, IsFile(fsys, "/a"))
	assert.True(t, IsDir(fsys, "/a"))
	assert.False(t, IsDir(fsys, "/missing"))
}

func TestIsWorldWritable(t *testing.T) {
	fsys := NewMemory()
	seed(t, fsys, map[string]string{"/marker": "priv"})

	ww, err := IsWorldWritable(fsys, "/marker")
	require.NoError(t, err)
	assert.False(t, ww)

	require.NoError(t, fsys.Chmod("/marker", 0666))
	ww, err = IsWorldWritable(fsys, "/marker")
	require.NoError(t, err)
	assert.True(t, ww)

	_, err = IsWorldWritable(fsys, "/missing")
	assert.Error(t, err)
}

func TestSymlinkOnOS(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, afero.WriteFile(fsys, target, []byte("x"), 0644))

	require.NoError(t, Symlink(fsys, target, link))
	got, err := Readlink(fsys, link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := Lstat(fsys, link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)
}

func TestSymlinkUnsupportedOnMemory(t *testing.T) {
	fsys := NewMemory()
	assert.ErrorIs(t, Symlink(fsys, "/a", "/b"), ErrSymlinkUnsupported)
	_, err := Readlink(fsys, "/b")
	assert.ErrorIs(t, err, ErrSymlinkUnsupported)
}
