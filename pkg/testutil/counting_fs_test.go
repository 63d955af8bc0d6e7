package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountingFs(t *testing.T) {
	fs := NewCountingFs(nil)

	require.NoError(t, fs.MkdirAll("/a/b", 0755))
	require.NoError(t, afero.WriteFile(fs, "/a/b/f", []byte("x"), 0644))
	require.NoError(t, fs.Chtimes("/a/b/f", time.Now(), time.Now()))

	_, err := afero.ReadFile(fs, "/a/b/f")
	require.NoError(t, err)
	_, err = fs.Stat("/a/b/f")
	require.NoError(t, err)
	_, _ = fs.Stat("/elsewhere")

	assert.Equal(t, []string{"mkdirall /a/b", "write /a/b/f", "chtimes /a/b/f"}, fs.Mutations())
	assert.Equal(t, 1, fs.StatCount("/a/"))
	assert.Equal(t, 2, fs.StatCount("/"))

	fs.Reset()
	f, err := fs.OpenFile("/a/b/f", os.O_RDONLY, 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Empty(t, fs.Mutations(), "read-only opens are not mutations")
	assert.Equal(t, "CountingFs(MemMapFS)", fs.Name())
}
