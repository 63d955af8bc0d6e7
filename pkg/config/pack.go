package config

import (
	"os"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// PackConfig is the optional .dotman.toml inside a package.
type PackConfig struct {
	Ignore []IgnoreRule `toml:"ignore"`
}

// IgnoreRule excludes files matching Path (a glob relative to the package)
// from copies and staleness checks.
type IgnoreRule struct {
	Path string `toml:"path"`
}

// Patterns returns the ignore globs.
func (c PackConfig) Patterns() []string {
	out := make([]string, 0, len(c.Ignore))
	for _, rule := range c.Ignore {
		if rule.Path != "" {
			out = append(out, rule.Path)
		}
	}
	return out
}

// LoadPackConfig reads a package's .dotman.toml. A missing file yields an
// empty config.
func LoadPackConfig(fsys afero.Fs, configPath string) (PackConfig, error) {
	logger := logging.GetLogger("config").With().Str("configPath", configPath).Logger()

	data, err := afero.ReadFile(fsys, configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return PackConfig{}, nil
		}
		return PackConfig{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", configPath)
	}

	var cfg PackConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return PackConfig{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
	}

	logger.Debug().Int("ignoreRules", len(cfg.Ignore)).Msg("loaded package config")
	return cfg, nil
}

// LoadPackage builds the Package for name in dir, applying its ignore
// rules.
func LoadPackage(fsys afero.Fs, name, dir string) (types.Package, error) {
	pkg := types.Package{Name: name, Path: dir}
	cfg, err := LoadPackConfig(fsys, pkg.FilePath(types.PackConfigFile))
	if err != nil {
		return types.Package{}, err
	}
	pkg.Ignore = cfg.Patterns()
	return pkg, nil
}
