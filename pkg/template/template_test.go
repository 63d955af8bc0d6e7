package template

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alacritty = `[font]
size = {{ .font_size }}
normal = { family = "{{ .family }}" }
# {{ os }} {{ if isOS "macos" }}mac{{ else }}other{{ end }} {{ env "USER" }}
`

func setup(t *testing.T, content string, mode os.FileMode) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/u/.config/alacritty", 0755))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.config/alacritty/alacritty.toml", []byte(content), mode))
	return fs
}

func vars() map[string]types.TemplateValue {
	return map[string]types.TemplateValue{
		"font_size": types.PerOS(map[platform.OSTag]interface{}{
			platform.MacOS: 15,
			platform.Linux: 11.5,
		}, nil, false),
		"family": types.Scalar("Hack Nerd Font"),
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		os   platform.OSTag
		want string
	}{
		{
			name: "macos",
			os:   platform.MacOS,
			want: "[font]\nsize = 15\nnormal = { family = \"Hack Nerd Font\" }\n# macos mac namachan\n",
		},
		{
			name: "linux",
			os:   platform.Linux,
			want: "[font]\nsize = 11.5\nnormal = { family = \"Hack Nerd Font\" }\n# linux other namachan\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setup(t, alacritty, 0600)
			env := paths.NewMapEnv(map[string]string{"USER": "namachan"})
			path := "/home/u/.config/alacritty/alacritty.toml"

			require.NoError(t, New(fs, env, tt.os).Apply(path, vars()))

			got, err := afero.ReadFile(fs, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			info, err := fs.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, "-rw-------", info.Mode().Perm().String())
		})
	}
}

func TestApplyMissingVariable(t *testing.T) {
	fs := setup(t, "size = {{ .undefined_var }}", 0600)
	err := New(fs, paths.NewMapEnv(nil), platform.Linux).
		Apply("/home/u/.config/alacritty/alacritty.toml", nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestApplyUnresolvableValue(t *testing.T) {
	fs := setup(t, alacritty, 0600)
	err := New(fs, paths.NewMapEnv(nil), platform.Unix).
		Apply("/home/u/.config/alacritty/alacritty.toml", vars())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestApplyMissingFile(t *testing.T) {
	err := New(afero.NewMemMapFs(), paths.NewMapEnv(nil), platform.Linux).
		Apply("/nowhere.toml", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestApplyIsIdempotentOnPlainText(t *testing.T) {
	fs := setup(t, "no markers here\n", 0644)
	p := New(fs, paths.NewMapEnv(nil), platform.Linux)
	path := "/home/u/.config/alacritty/alacritty.toml"

	require.NoError(t, p.Apply(path, nil))
	require.NoError(t, p.Apply(path, nil))

	got, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "no markers here\n", string(got))
}

func TestRenderParseError(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), nil, platform.Linux).Render("broken", "{{ .a ", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}
