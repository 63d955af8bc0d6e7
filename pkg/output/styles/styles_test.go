package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefaults(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, LoadStyles(DefaultContent()))
	})
}

func TestStyleRegistry(t *testing.T) {
	expectedStyles := []string{
		"Header", "Performed", "Pending", "Skipped", "Failed",
		"Error", "Warning", "Info", "Muted", "MutedItalic",
		"Name", "Kind", "Path", "DryRunBanner",
		"Bold", "Italic", "Underline",
	}

	for _, styleName := range expectedStyles {
		t.Run(styleName, func(t *testing.T) {
			_, exists := StyleRegistry[styleName]
			assert.True(t, exists, "Style %s should exist in registry", styleName)
		})
	}
}

func TestGetStyle(t *testing.T) {
	assert.Equal(t, StyleRegistry["Performed"], GetStyle("Performed"))
	assert.Equal(t, lipgloss.NewStyle(), GetStyle("NonExistentStyle"))
}

func TestMergeStyles(t *testing.T) {
	merged := MergeStyles("Bold", "NonExistent", "Italic")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
	assert.Equal(t, "x", MergeStyles().Render("x"))
}

func TestAdaptiveColors(t *testing.T) {
	for _, name := range []string{"primary", "muted", "success", "error", "warning", "info", "path"} {
		t.Run(name, func(t *testing.T) {
			color, exists := colors[name]
			require.True(t, exists, "Color %s should exist", name)
			assert.NotEmpty(t, color.Light)
			assert.NotEmpty(t, color.Dark)
		})
	}
}

func TestStyleProperties(t *testing.T) {
	assert.True(t, GetStyle("Header").GetBold())
	assert.True(t, GetStyle("Failed").GetBold())
	assert.True(t, GetStyle("Path").GetItalic())
	assert.Equal(t, 6, GetStyle("Kind").GetWidth())
	assert.Equal(t, 1, GetStyle("DryRunBanner").GetMarginBottom())
}

func TestLoadStyles(t *testing.T) {
	restoreDefaults(t)

	t.Run("replaces the registry", func(t *testing.T) {
		err := LoadStyles([]byte("colors:\n  red: {light: '#f00', dark: '#f00'}\nstyles:\n  Only: {foreground: red, align: right}\n"))
		require.NoError(t, err)
		assert.Len(t, StyleRegistry, 1)
		assert.Equal(t, lipgloss.Right, GetStyle("Only").GetAlignHorizontal())
	})

	t.Run("unknown color keeps the previous theme", func(t *testing.T) {
		before := StyleRegistry
		err := LoadStyles([]byte("styles:\n  Bad: {foreground: nope}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
		assert.Equal(t, before, StyleRegistry)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		assert.Error(t, LoadStyles([]byte("styles: [")))
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.yaml")
		require.NoError(t, os.WriteFile(path, DefaultContent(), 0644))
		require.NoError(t, LoadStylesFile(path))
		assert.Contains(t, StyleRegistry, "Performed")

		assert.Error(t, LoadStylesFile(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}
