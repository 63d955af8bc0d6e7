package types

import (
	"testing"

	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPolicyKinds(t *testing.T) {
	tests := []struct {
		policy CopyPolicy
		kind   PolicyKind
		str    string
	}{
		{Clean{}, PolicyClean, "clean"},
		{Merge{}, PolicyMerge, "merge"},
		{Choose{RelPath: "gpg.conf"}, PolicyChoose, "choose(gpg.conf)"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.policy.Kind())
			assert.Equal(t, tt.str, tt.policy.String())
		})
	}
}

func TestInstallSpecDestination(t *testing.T) {
	spec := InstallSpec{
		Package: Package{Name: "waybar"},
		Destinations: map[platform.OSTag]string{
			platform.Linux: "$XDG_CONFIG_HOME/waybar",
			platform.MacOS: "",
		},
		Policy: Clean{},
	}

	dest, ok := spec.Destination(platform.Linux)
	assert.True(t, ok)
	assert.Equal(t, "$XDG_CONFIG_HOME/waybar", dest)

	_, ok = spec.Destination(platform.MacOS)
	assert.False(t, ok, "empty destination means not applicable")

	_, ok = spec.Destination(platform.Unix)
	assert.False(t, ok)

	assert.Equal(t, []string{"linux", "macos"}, spec.OSNames())
}

func TestInstallSpecValidate(t *testing.T) {
	base := InstallSpec{Package: Package{Name: "gpg"}, Policy: Choose{RelPath: "gpg.conf"}}
	assert.NoError(t, base.Validate())

	noPolicy := base
	noPolicy.Policy = nil
	assert.Error(t, noPolicy.Validate())

	emptyChoose := base
	emptyChoose.Policy = Choose{}
	assert.Error(t, emptyChoose.Validate())

	chosenTemplate := base
	chosenTemplate.Template = &TemplateSpec{}
	assert.NoError(t, chosenTemplate.Validate())
	assert.Equal(t, "/home/u/.gnupg/gpg.conf", chosenTemplate.TemplateTarget("/home/u/.gnupg/gpg.conf"))

	chosenWithPath := base
	chosenWithPath.Template = &TemplateSpec{Path: "other.conf"}
	assert.Error(t, chosenWithPath.Validate())

	tree := InstallSpec{Package: Package{Name: "alacritty"}, Policy: Merge{}, Template: &TemplateSpec{}}
	assert.Error(t, tree.Validate())
	tree.Template.Path = "alacritty.toml"
	assert.NoError(t, tree.Validate())
	assert.Equal(t, "/home/u/.config/alacritty/alacritty.toml", tree.TemplateTarget("/home/u/.config/alacritty"))

	assert.Error(t, InstallSpec{Policy: Merge{}}.Validate())
}

func TestPackageIsIgnored(t *testing.T) {
	pkg := Package{Name: "fish", Ignore: []string{"*.bak", "fish_variables", "completions/"}}

	assert.True(t, pkg.IsIgnored(".dotman.toml"))
	assert.True(t, pkg.IsIgnored("sub/.dotman.toml"))
	assert.True(t, pkg.IsIgnored("config.fish.bak"))
	assert.True(t, pkg.IsIgnored("conf.d/old.bak"))
	assert.True(t, pkg.IsIgnored("fish_variables"))
	assert.True(t, pkg.IsIgnored("completions/git.fish"))
	assert.False(t, pkg.IsIgnored("config.fish"))
	assert.False(t, pkg.IsIgnored("functions/fisher.fish"))
}

func TestTemplateValueResolve(t *testing.T) {
	scalar := Scalar(13)
	v, err := scalar.Resolve(platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, 13, v)
	assert.False(t, scalar.IsConditional())

	opacity := PerOS(map[platform.OSTag]interface{}{platform.MacOS: 0.9}, 0.7, true)
	assert.True(t, opacity.IsConditional())

	v, err = opacity.Resolve(platform.MacOS)
	require.NoError(t, err)
	assert.Equal(t, 0.9, v)

	v, err = opacity.Resolve(platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	strict := PerOS(map[platform.OSTag]interface{}{platform.MacOS: "a"}, nil, false)
	_, err = strict.Resolve(platform.Linux)
	assert.Error(t, err)
}

func TestResolveAll(t *testing.T) {
	vars := map[string]TemplateValue{
		"font_size": Scalar(13),
		"opacity":   PerOS(map[platform.OSTag]interface{}{platform.MacOS: 0.9}, 0.7, true),
	}

	got, err := ResolveAll(vars, platform.MacOS)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"font_size": 13, "opacity": 0.9}, got)

	vars["broken"] = PerOS(map[platform.OSTag]interface{}{}, nil, false)
	_, err = ResolveAll(vars, platform.Linux)
	assert.ErrorContains(t, err, "broken")
}
