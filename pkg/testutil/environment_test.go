// pkg/testutil/environment_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test TestEnvironment orchestration

package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_MemoryOnly(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)

	assert.Equal(t, "/virtual/dotfiles", env.DotfilesRoot)
	assert.Equal(t, "/virtual/home", env.Env.Getenv("HOME"))
	assert.True(t, DirExists(env.FS, env.PackagesDir()))
	assert.True(t, DirExists(env.FS, env.HomeDir))
	assert.Empty(t, env.FS.Mutations(), "setup does not count")
	assert.NotEqual(t, env.HomeDir, os.Getenv("HOME"))
}

func TestTestEnvironment_Isolated(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated)

	_, err := os.Stat(env.PackagesDir())
	require.NoError(t, err, "isolated environments live on disk")
	assert.Equal(t, env.HomeDir+"/.gnupg", env.Home(".gnupg"))
}

func TestTestEnvironment_AddPackage(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly)

	dir := env.AddPackage("fish", FishPackage())
	assert.Equal(t, "/virtual/dotfiles/pkgs/fish", dir)
	assert.Equal(t, []string{
		".dotman.toml",
		"config.fish",
		"fish_variables",
		"functions/fish_prompt.fish",
	}, FilesUnder(t, env.FS, dir))

	manifest := env.WriteManifest("[settings]\n")
	AssertFileContent(t, env.FS, manifest, "[settings]\n")
}
