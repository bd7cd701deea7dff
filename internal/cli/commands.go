package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nox/internal/version"
	"github.com/arthur-debert/nox/pkg/commands"
	"github.com/arthur-debert/nox/pkg/config"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func toRefs(args []string) []types.PackageRef {
	refs := make([]types.PackageRef, len(args))
	for i, a := range args {
		refs[i] = types.PackageRef(a)
	}
	return refs
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var (
		dryRun bool
		user   string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:     "sync <config>",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("jobs") {
				overrides["sync.jobs"] = jobs
			}
			return opts.withEnvironment(overrides, func(env *commands.Environment) error {
				res, err := commands.Sync(cmd.Context(), env, commands.SyncOptions{
					ConfigPath: args[0],
					User:       user,
					DryRun:     dryRun,
				})
				return opts.renderRun(cmd, res, err)
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().StringVarP(&user, "user", "u", "", MsgFlagUser)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, MsgFlagJobs)

	return cmd
}

func newInstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "install <package>...",
		Short:             MsgInstallShort,
		Long:              MsgInstallLong,
		GroupID:           "packages",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: opts.completeDefined,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(nil, func(env *commands.Environment) error {
				res, err := commands.Install(cmd.Context(), env, toRefs(args))
				return opts.renderRun(cmd, res, err)
			})
		},
	}
}

func newUninstallCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "uninstall <package>...",
		Aliases:           []string{"remove", "rm"},
		Short:             MsgUninstallShort,
		Long:              MsgUninstallLong,
		GroupID:           "packages",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: opts.completeInstalled,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(nil, func(env *commands.Environment) error {
				res, err := commands.Uninstall(cmd.Context(), env, toRefs(args), force)
				return opts.renderRun(cmd, res, err)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(nil, func(env *commands.Environment) error {
				res, err := commands.List(env, commands.ListOptions{All: all})
				if err != nil {
					return err
				}
				return opts.render(cmd, res)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)

	return cmd
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "info <package>",
		Short:             MsgInfoShort,
		Long:              MsgInfoLong,
		GroupID:           "packages",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: opts.completeDefined,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnvironment(nil, func(env *commands.Environment) error {
				res, err := commands.Info(env, types.PackageRef(args[0]))
				if err != nil {
					return err
				}
				return opts.render(cmd, res)
			})
		},
	}
}

func newSnippetCmd(opts *rootOptions) *cobra.Command {
	var shellName string

	cmd := &cobra.Command{
		Use:     "snippet",
		Short:   MsgSnippetShort,
		Long:    MsgSnippetLong,
		Example: MsgSnippetExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shellName == "" {
				shellName = filepath.Base(os.Getenv("SHELL"))
			}
			return opts.withEnvironment(nil, func(env *commands.Environment) error {
				res, err := commands.Snippet(env, shellName)
				if err != nil {
					return err
				}
				return opts.render(cmd, res)
			})
		},
	}

	cmd.Flags().StringVarP(&shellName, "shell", "s", "", MsgFlagShell)
	_ = cmd.RegisterFlagCompletionFunc("shell", cobra.FixedCompletions(
		[]string{"sh", "bash", "zsh", "ksh", "dash", "fish"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
			return err
		},
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf("[package]nox[/package] [version]%s[/version] (commit %s, built %s)",
				version.Version, version.Commit, version.Date))
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeDefined completes package names from the registry
func (o *rootOptions) completeDefined(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	err := o.withEnvironment(nil, func(env *commands.Environment) error {
		for _, ref := range env.Registry.List() {
			if strings.HasPrefix(string(ref), toComplete) {
				names = append(names, string(ref))
			}
		}
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Completion failed")
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeInstalled completes package names from the store
func (o *rootOptions) completeInstalled(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	err := o.withEnvironment(nil, func(env *commands.Environment) error {
		for _, ref := range commands.Installed(env) {
			if strings.HasPrefix(string(ref), toComplete) {
				names = append(names, string(ref))
			}
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
