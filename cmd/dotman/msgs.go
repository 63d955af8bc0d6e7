package dotman

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install dotfiles and tools for a target profile"
	MsgStatusShort     = "Show which tasks would run"
	MsgProfilesShort   = "List the manifest's profiles"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - no changes will be made"
	MsgSummary      = "%s: %s\n"
	MsgNoProfiles   = "No profiles defined."

	// Version output
	MsgVersionFormat = "dotman version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Error messages
	MsgErrOS          = "invalid --os: %w"
	MsgErrFormat      = "invalid --format: %w"
	MsgFallbackFormat = "Warning: no dotfiles root found, using the working directory %s\n"

	// Flag descriptions
	MsgFlagTarget  = "Target name; profiles match it by alias (default: the marker file)"
	MsgFlagVerbose = "Report skipped tasks and increase log verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Check every task without performing any"
	MsgFlagConfig  = "Manifest file (default: dotman.toml in the dotfiles root)"
	MsgFlagOS      = "Act as if running on this OS (macos, linux, windows, unix)"
	MsgFlagRoot    = "Dotfiles root (default: $DOTMAN_ROOT, the git repository or the working directory)"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml, toml or xml"
	MsgFlagManDir  = "Write one page per command into this directory instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/profiles-long.txt
	msgProfilesLongRaw string
	MsgProfilesLong    = strings.TrimSpace(msgProfilesLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/no-target.txt
	msgNoTargetRaw string
	MsgNoTarget    = strings.TrimSpace(msgNoTargetRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
