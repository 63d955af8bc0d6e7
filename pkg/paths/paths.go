package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
)

// Environment variable names
const (
	// EnvDotmanRoot is the primary environment variable for the dotfiles location
	EnvDotmanRoot = "DOTMAN_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultPackagesDir is the directory under the root holding packages
	DefaultPackagesDir = "pkgs"

	// PackConfigFile is the name of the optional per-package config file
	PackConfigFile = ".dotman.toml"

	// DefaultMarker is the file remembering the last selected target
	DefaultMarker = "$HOME/.dotfile"
)

// ManifestNames are the manifest file names looked up in the root, in order.
var ManifestNames = []string{"dotman.toml", "dotman.yaml", "dotman.yml", ".dotman.toml"}

// Paths locates the dotfiles root and the directories derived from it.
type Paths struct {
	root         string
	packagesDir  string
	usedFallback bool
}

// New creates a Paths rooted at root. An empty root is discovered from
// DOTMAN_ROOT, then the git toplevel, then the working directory.
func New(root string) (*Paths, error) {
	p := &Paths{packagesDir: DefaultPackagesDir}

	if root == "" {
		found, usedFallback, err := findRoot()
		if err != nil {
			return nil, err
		}
		root = found
		p.usedFallback = usedFallback
	}

	abs, err := filepath.Abs(expandHome(root, OSEnv{}))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for root %s", root)
	}
	p.root = abs
	return p, nil
}

// Root returns the dotfiles root.
func (p *Paths) Root() string {
	return p.root
}

// UsedFallback reports whether the working directory was used as the root.
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// SetPackagesDir overrides the packages directory. Relative values are
// taken relative to the root.
func (p *Paths) SetPackagesDir(dir string) {
	if dir != "" {
		p.packagesDir = dir
	}
}

// PackagesDir returns the absolute directory holding all packages.
func (p *Paths) PackagesDir() string {
	if filepath.IsAbs(p.packagesDir) {
		return filepath.Clean(p.packagesDir)
	}
	return filepath.Join(p.root, p.packagesDir)
}

// PackagePath returns the source directory of a package.
func (p *Paths) PackagePath(name string) string {
	return filepath.Join(p.PackagesDir(), name)
}

// PackConfigPath returns the path of a package's .dotman.toml.
func (p *Paths) PackConfigPath(name string) string {
	return filepath.Join(p.PackagePath(name), PackConfigFile)
}

// ManifestCandidates returns the manifest paths to try, in order.
func (p *Paths) ManifestCandidates() []string {
	out := make([]string, 0, len(ManifestNames))
	for _, name := range ManifestNames {
		out = append(out, filepath.Join(p.root, name))
	}
	return out
}

// findRoot determines the dotfiles root using the following priority:
// 1. DOTMAN_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotmanRoot); root != "" {
		return root, false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	logger := logging.GetLogger("paths")

	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		logger.Debug().Err(err).Msg("git root lookup failed")
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	logger.Debug().Str("root", gitRoot).Msg("git root found")
	return gitRoot, nil
}
