package dotman

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/output"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/arthur-debert/dotman/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
[settings]
marker = "/var/lib/dotman/target"

[[profiles]]
name = "priv"
groups = ["common"]

[[profiles]]
name = "work"
aliases = ["ckpd"]
groups = ["tools"]

[[groups]]
name = "common"

  [[groups.tasks]]
  type = "copy"
  package = "gpg"
  choose = "gpg.conf"
  dest = "$HOME/.gnupg/gpg.conf"

[[groups]]
name = "tools"

  [[groups.tasks]]
  type = "shell"
  name = "rustup"
  command = "install-rustup"
  unless = ["$HOME/.cargo/bin/cargo"]
`

type cli struct {
	fs     *testutil.CountingFs
	runner *tasks.RecordingRunner
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	c := &cli{
		fs:     testutil.NewCountingFs(nil),
		runner: &tasks.RecordingRunner{},
	}
	testutil.WriteFiles(t, c.fs, map[string]string{
		"/dots/dotman.toml":       testManifest,
		"/dots/pkgs/gpg/gpg.conf": "use-agent\n",
	})
	require.NoError(t, c.fs.MkdirAll("/home/u", 0755))
	require.NoError(t, c.fs.MkdirAll("/var/lib/dotman", 0755))
	c.fs.Reset()
	return c
}

func (c *cli) execute(args ...string) error {
	cmd := NewRootCmdWith(Deps{
		FS:           c.fs,
		Env:          paths.NewMapEnv(map[string]string{"HOME": "/home/u"}),
		Runner:       c.runner,
		IsRoot:       func() bool { return false },
		Format:       output.FormatText,
		SetupLogging: func(int) {},
	})
	c.stdout.Reset()
	c.stderr.Reset()
	cmd.SetOut(&c.stdout)
	cmd.SetErr(&c.stderr)
	cmd.SetArgs(append([]string{"--root", "/dots", "--os", "linux"}, args...))
	return cmd.Execute()
}

func TestInstallTarget(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("-t", "priv"))

	assert.Equal(t, output.GlyphPerformed+" gpg\n", c.stdout.String())
	testutil.AssertFileContent(t, c.fs, "/home/u/.gnupg/gpg.conf", "use-agent\n")
	testutil.AssertFileContent(t, c.fs, "/var/lib/dotman/target", "priv\n")
}

func TestInstallFromMarker(t *testing.T) {
	c := newCLI(t)
	testutil.WriteFile(t, c.fs, "/var/lib/dotman/target", "ckpd\n", 0644)

	require.NoError(t, c.execute())

	require.Len(t, c.runner.Commands(), 1)
	assert.Equal(t, []string{"-c", "install-rustup"}, c.runner.Commands()[0].Args)
}

func TestInstallDryRun(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("-t", "priv", "--dry-run"))

	out := c.stdout.String()
	assert.Contains(t, out, MsgDryRunNotice)
	assert.Contains(t, out, output.GlyphPerformed+" gpg (dry run)")
	assert.Empty(t, c.fs.Mutations())
}

func TestInstallVerbosePrintsSummary(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("-t", "priv", "-v"))
	require.NoError(t, c.execute("-t", "priv", "-v"))

	assert.Contains(t, c.stdout.String(), output.GlyphSkipped+" gpg")
	assert.Contains(t, c.stdout.String(), "priv: 1 skipped")
}

func TestInstallWithoutTarget(t *testing.T) {
	c := newCLI(t)

	err := c.execute()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoTarget))
	assert.Contains(t, c.stderr.String(), "/var/lib/dotman/target")
	assert.Contains(t, strings.ToLower(c.stderr.String()), "usage:")
	assert.Empty(t, c.stdout.String())
	assert.Empty(t, c.fs.Mutations())
}

func TestInstallUnknownTarget(t *testing.T) {
	c := newCLI(t)

	err := c.execute("-t", "nope")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoTarget))
	assert.False(t, testutil.FileExists(c.fs, "/var/lib/dotman/target"))
}

func TestInvalidOS(t *testing.T) {
	c := newCLI(t)

	err := c.execute("-t", "priv", "--os", "plan9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --os")
}

func TestRejectsArguments(t *testing.T) {
	c := newCLI(t)
	assert.Error(t, c.execute("priv"))
}

func TestStatus(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("status", "-t", "priv"))

	out := c.stdout.String()
	assert.Contains(t, out, "TASK")
	assert.Contains(t, out, "gpg")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "priv: 1 pending")
	assert.Empty(t, c.fs.Mutations())
}

func TestStatusJSON(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("status", "-t", "priv", "--format", "json"))

	var report tasks.Report
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &report))
	assert.Equal(t, "priv", report.Target)
	assert.True(t, report.DryRun)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, tasks.StatusPending, report.Outcomes[0].Status)
}

func TestStatusBadFormat(t *testing.T) {
	c := newCLI(t)

	err := c.execute("status", "-t", "priv", "--format", "csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestProfiles(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("profiles"))

	out := c.stdout.String()
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "priv")
	assert.Contains(t, out, "ckpd")
	assert.Contains(t, out, "tools")
}

func TestProfilesWithoutManifest(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, c.fs.Remove("/dots/dotman.toml"))

	assert.Error(t, c.execute("profiles"))
}

func TestVersion(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("version"))
	assert.True(t, strings.HasPrefix(c.stdout.String(), "dotman version "))
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c := newCLI(t)
			require.NoError(t, c.execute("completion", shell))
			assert.Contains(t, c.stdout.String(), "dotman")
		})
	}

	c := newCLI(t)
	assert.Error(t, c.execute("completion", "tcsh"))
}

func TestMan(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("man"))
	assert.Contains(t, c.stdout.String(), ".TH \"DOTMAN\"")
}

func TestHelpTopic(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("help", "manifest"))
	assert.NotEmpty(t, c.stdout.String())
}

func TestHelpCommand(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.execute("help", "status"))
	assert.Contains(t, c.stdout.String(), "--format")
}

func TestEngineOptions(t *testing.T) {
	g := &globalOptions{target: "priv", root: "/dots", osName: "darwin", verbosity: 2, dryRun: true}

	o, err := g.engineOptions()

	require.NoError(t, err)
	assert.Equal(t, "priv", o.Target)
	assert.Equal(t, "/dots", o.Root)
	assert.Equal(t, "macos", string(o.OS))
	assert.True(t, o.Verbose)
	assert.True(t, o.DryRun)
}
