package paths

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/spf13/afero"
)

var envTokenPattern = regexp.MustCompile(`\$([A-Za-z0-9_]+)`)

// ExpandVars replaces every $NAME token with the value of NAME in env.
// Undefined variables become the empty string.
func ExpandVars(path string, env Env) string {
	return envTokenPattern.ReplaceAllStringFunc(path, func(token string) string {
		name := token[1:]
		value, ok := env.LookupEnv(name)
		if !ok {
			logger := logging.GetLogger("paths")
			logger.Warn().
				Str("variable", name).
				Str("path", path).
				Msg("Undefined variable in path, substituting empty string")
		}
		return value
	})
}

// Resolve expands variables and `~`, then returns the absolute, cleaned path.
// Relative results are anchored at the current working directory.
func Resolve(path string, env Env) string {
	expanded := expandHome(ExpandVars(path, env), env)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		// Abs only fails when the working directory is gone
		return filepath.Clean(expanded)
	}
	return abs
}

// Exists resolves path and reports whether it exists on fs. Any stat error
// counts as absent.
func Exists(fs afero.Fs, path string, env Env) bool {
	_, err := fs.Stat(Resolve(path, env))
	return err == nil
}

// expandHome expands ~ to the home directory
func expandHome(path string, env Env) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := env.Getenv(EnvHome)
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
