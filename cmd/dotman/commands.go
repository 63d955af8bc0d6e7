package dotman

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotman/internal/version"
	"github.com/arthur-debert/dotman/pkg/output"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newStatusCmd(d Deps, g *globalOptions) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(formatName)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}

			opts, err := g.engineOptions()
			if err != nil {
				return err
			}
			opts.DryRun = true

			eng := d.engine(tasks.NopReporter{})
			plan, err := eng.Prepare(opts)
			if err != nil {
				if errorsIsNoTarget(err) {
					noTargetUsage(cmd, err)
				}
				return err
			}
			warnFallback(cmd, plan.Paths)

			report, err := plan.Set.Execute(eng.Context(cmd.Context(), opts))
			if err != nil {
				return err
			}
			report.Target = plan.Selection.Profile.Name

			out := cmd.OutOrStdout()
			if format == output.FormatAuto {
				format = d.humanFormat(out)
			}
			if format.IsMachine() {
				return output.Encode(out, report, format)
			}

			table, err := output.StatusTable(report)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, table)
			_, _ = fmt.Fprintf(out, MsgSummary, report.Target, output.Summary(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newProfilesCmd(d Deps, g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		Long:    MsgProfilesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.engineOptions()
			if err != nil {
				return err
			}
			p, m, err := d.engine(tasks.NopReporter{}).LoadManifest(opts)
			if err != nil {
				return err
			}
			warnFallback(cmd, p)

			out := cmd.OutOrStdout()
			if len(m.Profiles) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoProfiles)
				return nil
			}
			table, err := output.ProfilesTable(m)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "unknown" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "unknown" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// ManHeader is the header of the generated man pages.
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DOTMAN",
		Section: "1",
		Source:  "dotman " + version.Version,
		Manual:  "dotman manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
				return doc.GenManTree(cmd.Root(), ManHeader(), dir)
			}
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}

// warnFallback tells the user the working directory stood in for the root.
func warnFallback(cmd *cobra.Command, p *paths.Paths) {
	if p != nil && p.UsedFallback() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackFormat, p.Root())
	}
}
