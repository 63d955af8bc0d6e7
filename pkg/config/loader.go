package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// EnvPrefix prefixes environment variables overriding settings, e.g.
// DOTMAN_SETTINGS_PACKAGES_DIR.
const EnvPrefix = "DOTMAN_"

// Load reads the manifest at path from the OS filesystem.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("config")

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path)
	}

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path)
	}

	m, err := finish(k, path)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("path", path).
		Int("profiles", len(m.Profiles)).
		Int("groups", len(m.Groups)).
		Msg("manifest loaded")
	return m, nil
}

// LoadFS reads the manifest at path from fsys.
func LoadFS(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path)
	}
	return Parse(data, path)
}

// Parse decodes manifest content. The format is taken from the extension
// of name: .yaml and .yml are YAML, anything else TOML.
func Parse(data []byte, name string) (*Manifest, error) {
	parser, err := parserFor(name)
	if err != nil {
		return nil, err
	}
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", name)
	}
	return finish(k, name)
}

// FindManifest returns the first candidate that exists on fsys.
func FindManifest(fsys afero.Fs, candidates []string) (string, error) {
	for _, c := range candidates {
		if info, err := fsys.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrConfigLoad, "no manifest found").
		WithDetail("candidates", candidates)
}

func parserFor(name string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml", "":
		return toml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported manifest format %s", filepath.Ext(name))
	}
}

// newKoanf returns a koanf instance holding the embedded defaults.
func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	return k, nil
}

// finish applies environment overrides, decodes and validates.
func finish(k *koanf.Koanf, source string) (*Manifest, error) {
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var m Manifest
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &m,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToDestHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &m, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode manifest %s", source)
	}
	m.Source = source

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// envKey maps DOTMAN_SETTINGS_PACKAGES_DIR to settings.packages_dir. Other
// DOTMAN_ variables, such as DOTMAN_ROOT, are not manifest keys.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.HasPrefix(key, "settings_") {
		return ""
	}
	return "settings." + strings.TrimPrefix(key, "settings_")
}

var destType = reflect.TypeOf(map[string]string{})

// stringToDestHookFunc lets `dest = "$HOME/x"` stand for
// `dest = { default = "$HOME/x" }`.
func stringToDestHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() == reflect.String && t == destType {
			return map[string]string{DefaultDestKey: data.(string)}, nil
		}
		return data, nil
	}
}
