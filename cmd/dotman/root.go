// Package dotman is the dotman command line.
package dotman

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotman/internal/version"
	"github.com/arthur-debert/dotman/pkg/engine"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/output"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/arthur-debert/dotman/pkg/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Deps are the collaborators the commands run against. Zero values mean
// the real ones: OS filesystem, process environment, os/exec.
type Deps struct {
	FS     afero.Fs
	Env    paths.Env
	Runner tasks.Runner
	IsRoot func() bool

	// Format forces the human output style instead of detecting it.
	Format output.Format

	SetupLogging func(verbosity int)
}

func (d Deps) engine(reporter tasks.Reporter) *engine.Engine {
	opts := []engine.Option{engine.WithReporter(reporter)}
	if d.FS != nil {
		opts = append(opts, engine.WithFS(d.FS))
	}
	if d.Env != nil {
		opts = append(opts, engine.WithEnv(d.Env))
	}
	if d.Runner != nil {
		opts = append(opts, engine.WithRunner(d.Runner))
	}
	if d.IsRoot != nil {
		opts = append(opts, engine.WithRootCheck(d.IsRoot))
	}
	return engine.New(opts...)
}

func (d Deps) humanFormat(w io.Writer) output.Format {
	if d.Format != output.FormatAuto {
		return d.Format
	}
	if f, ok := w.(*os.File); ok {
		return output.DetectFormat(f)
	}
	return output.FormatText
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	target     string
	configPath string
	osName     string
	root       string
	verbosity  int
	dryRun     bool
}

func (g *globalOptions) engineOptions() (engine.Options, error) {
	o := engine.Options{
		Target:     g.target,
		Root:       g.root,
		ConfigPath: g.configPath,
		Verbose:    g.verbosity > 0,
		DryRun:     g.dryRun,
	}
	if g.osName != "" {
		tag, err := platform.ParseTag(g.osName)
		if err != nil {
			return o, fmt.Errorf(MsgErrOS, err)
		}
		o.OS = tag
	}
	return o, nil
}

// NewRootCmd creates the root command on the real system.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(Deps{})
}

// NewRootCmdWith creates the root command with the given collaborators.
func NewRootCmdWith(d Deps) *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}
	setupLogging := d.SetupLogging
	if setupLogging == nil {
		setupLogging = logging.SetupLogger
	}

	rootCmd := &cobra.Command{
		Use:     "dotman",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, d, g)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&g.target, "target", "t", "", MsgFlagTarget)
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.configPath, "config", "", MsgFlagConfig)
	pf.StringVar(&g.osName, "os", "", MsgFlagOS)
	pf.StringVar(&g.root, "root", "", MsgFlagRoot)

	_ = rootCmd.RegisterFlagCompletionFunc("os", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"macos", "linux", "windows", "unix"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		opts, err := g.engineOptions()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		_, m, err := d.engine(tasks.NopReporter{}).LoadManifest(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return m.ProfileNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newStatusCmd(d, g))
	rootCmd.AddCommand(newProfilesCmd(d, g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if _, err := topics.Initialize(rootCmd, topics.Builtin(), topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
	}

	return rootCmd
}

// runInstall is the root command: resolve the target and run its tasks.
func runInstall(cmd *cobra.Command, d Deps, g *globalOptions) error {
	logger := logging.GetLogger("cmd.install")

	opts, err := g.engineOptions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	term := output.NewTerminalFor(out, d.humanFormat(out))
	if opts.DryRun {
		term.Banner("DryRunBanner", MsgDryRunNotice)
	}

	report, err := d.engine(term).Run(cmd.Context(), opts)
	if err != nil {
		if errorsIsNoTarget(err) {
			noTargetUsage(cmd, err)
		}
		return err
	}

	logger.Info().
		Str("target", report.Target).
		Int("performed", report.Count(tasks.StatusPerformed)).
		Int("skipped", report.Count(tasks.StatusSkipped)).
		Int("failed", report.Count(tasks.StatusFailed)).
		Msg("install finished")

	if opts.Verbose {
		_, _ = fmt.Fprintf(out, MsgSummary, report.Target, output.Summary(report))
	}
	return nil
}

func errorsIsNoTarget(err error) bool {
	return errors.IsErrorCode(err, errors.ErrNoTarget)
}

// noTargetUsage prints the usage and how to pick a target to stderr.
func noTargetUsage(cmd *cobra.Command, err error) {
	stderr := cmd.ErrOrStderr()
	_, _ = fmt.Fprint(stderr, cmd.UsageString())
	if marker, ok := errors.GetErrorDetails(err)["marker"].(string); ok {
		_, _ = fmt.Fprintf(stderr, "\n"+MsgNoTarget+"\n", marker)
	}
}
