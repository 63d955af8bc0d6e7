// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with a dotfiles root and a home

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a dotfiles root, a home directory and an
// environment table on a filesystem. Nothing in the process environment is
// touched; code under test reads HOME from Env.
type TestEnvironment struct {
	// Core paths
	DotfilesRoot string
	HomeDir      string

	FS  *CountingFs
	Env *paths.MapEnv

	// Environment type
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.DotfilesRoot = "/virtual/dotfiles"
		env.HomeDir = "/virtual/home"
		env.FS = NewCountingFs(afero.NewMemMapFs())
	case EnvIsolated:
		tempDir := t.TempDir()
		env.DotfilesRoot = filepath.Join(tempDir, "dotfiles")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = NewCountingFs(afero.NewOsFs())
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	for _, dir := range []string{env.PackagesDir(), env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	env.Env = paths.NewMapEnv(map[string]string{paths.EnvHome: env.HomeDir})
	env.FS.Reset()

	return env
}

// PackagesDir is where AddPackage puts packages.
func (env *TestEnvironment) PackagesDir() string {
	return filepath.Join(env.DotfilesRoot, paths.DefaultPackagesDir)
}

// Home joins rel onto the home directory.
func (env *TestEnvironment) Home(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// WriteManifest writes dotman.toml at the root and returns its path.
func (env *TestEnvironment) WriteManifest(content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.FS, filepath.Join(env.DotfilesRoot, "dotman.toml"), content, 0644)
}

// AddPackage creates a package from package-relative path -> content and
// returns its directory.
func (env *TestEnvironment) AddPackage(name string, files PackageFiles) string {
	env.t.Helper()

	dir := filepath.Join(env.PackagesDir(), name)
	if err := env.FS.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create package directory: %v", err)
	}
	for rel, content := range files {
		WriteFile(env.t, env.FS, filepath.Join(dir, rel), content, 0644)
	}
	return dir
}

// PackageFiles maps package-relative paths to content.
type PackageFiles map[string]string

// FishPackage is a tree package with a nested directory and an ignored file.
func FishPackage() PackageFiles {
	return PackageFiles{
		"config.fish":                "set -x EDITOR nvim\n",
		"functions/fish_prompt.fish": "function fish_prompt\n  echo '> '\nend\n",
		"fish_variables":             "SETUVAR __fish_initialized:3400\n",
		".dotman.toml":               "[[ignore]]\npath = \"fish_variables\"\n",
	}
}
