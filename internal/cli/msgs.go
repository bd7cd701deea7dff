package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install and manage developer toolchains"
	MsgSyncShort       = "Make installed packages match a configuration file"
	MsgInstallShort    = "Install packages and their dependencies"
	MsgUninstallShort  = "Remove installed packages"
	MsgListShort       = "List installed packages"
	MsgInfoShort       = "Describe a package"
	MsgSnippetShort    = "Output shell integration snippet"
	MsgGenConfigShort  = "Print a commented settings file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Settings file (default $XDG_CONFIG_HOME/nox/config.toml)"
	MsgFlagFormat  = "Output format: auto, term, text, json or yaml"
	MsgFlagDryRun  = "Show the plan without changing anything"
	MsgFlagUser    = "Use this user's package list from the configuration"
	MsgFlagJobs    = "Maximum concurrent actions (0 means no limit)"
	MsgFlagForce   = "Remove packages even if installed packages depend on them"
	MsgFlagAll     = "Include packages that are not installed"
	MsgFlagShell   = "Shell type (sh, bash, zsh, ksh, dash, fish)"

	// Error messages
	MsgErrNoCommand = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/info-long.txt
	msgInfoLongRaw string
	MsgInfoLong    = strings.TrimSpace(msgInfoLongRaw)

	//go:embed msgs/snippet-long.txt
	msgSnippetLongRaw string
	MsgSnippetLong    = strings.TrimSpace(msgSnippetLongRaw)

	//go:embed msgs/snippet-example.txt
	msgSnippetExampleRaw string
	MsgSnippetExample    = strings.TrimRight(msgSnippetExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
