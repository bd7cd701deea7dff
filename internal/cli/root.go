package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/nox/internal/version"
	"github.com/arthur-debert/nox/pkg/commands"
	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/paths"
	"github.com/arthur-debert/nox/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags
type rootOptions struct {
	verbosity  int
	configFile string
	format     string
}

// reportedError marks an error whose details were already rendered as
// part of a command result
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "nox",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile := ""
			if p, err := paths.New(""); err == nil {
				logFile = p.LogFilePath()
			}
			logging.SetupLogger(opts.verbosity, logFile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{ID: "packages", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSyncCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newUninstallCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newInfoCmd(opts))
	rootCmd.AddCommand(newSnippetCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd, opts
}

// Execute runs nox with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd, opts := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var reported reportedError
	if stderrors.As(err, &reported) {
		return 1
	}

	r, rerr := opts.renderer(stderr)
	if rerr != nil {
		r, _ = ui.NewRenderer(ui.FormatText, stderr)
	}
	if rerr := r.RenderError(err); rerr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// renderer builds the renderer selected by --format
func (o *rootOptions) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// withEnvironment sets up the environment, runs fn, and writes metrics
// afterwards whether or not fn succeeded
func (o *rootOptions) withEnvironment(overrides map[string]interface{}, fn func(env *commands.Environment) error) error {
	env, err := commands.Setup(commands.Options{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	defer func() {
		if ferr := env.Flush(); ferr != nil {
			logger := logging.GetLogger("cli")
			logger.Warn().Err(ferr).Msg("Failed to write metrics")
		}
	}()
	return fn(env)
}

// render writes result to the command's output
func (o *rootOptions) render(cmd *cobra.Command, result interface{}) error {
	r, err := o.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

// renderRun renders a run result. When the run failed the failures are
// part of the result, so the error is marked as already reported.
func (o *rootOptions) renderRun(cmd *cobra.Command, res *commands.RunResult, runErr error) error {
	if res == nil {
		return runErr
	}
	if err := o.render(cmd, res); err != nil {
		return err
	}
	if runErr != nil {
		return reportedError{runErr}
	}
	return nil
}
