package turboterm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/turboterm/internal/version"
	"github.com/arthur-debert/turboterm/pkg/cli"
	"github.com/arthur-debert/turboterm/pkg/config"
	"github.com/arthur-debert/turboterm/pkg/console"
	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
)

// app carries the global flags and the state PersistentPreRunE prepares
// for command handlers.
type app struct {
	verbosity  int
	configFile string
	noColor    bool

	cfg     *config.Config
	console *console.Console
	out     io.Writer
	in      io.Reader
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "turboterm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help
			return cmd.Help()
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	cli.Attach(rootCmd, a.commands())
	rootCmd.AddCommand(newVersionCmd())
	a.initTopics(rootCmd)

	return rootCmd
}

// setup loads configuration, configures logging and builds the console
func (a *app) setup(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	overrides := map[string]any{}
	if a.noColor {
		overrides["output.no_color"] = true
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		WorkDir:    workDir,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	logging.SetupLogger(max(a.verbosity, cfg.Log.Verbosity), cfg.Output.NoColor)
	logging.LogCommand(cmd.Name(), args)

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.in = cmd.InOrStdin()
	a.console = console.New(a.out, console.WithConfig(cfg))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// Execute runs turboterm with the given arguments and streams and returns
// the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)

	err := cli.Execute(ctx, rootCmd, args, stdout, stderr)
	if err == nil {
		return 0
	}

	log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")

	errorStyle := lipgloss.NewRenderer(stderr).NewStyle().Foreground(lipgloss.Color("1"))
	fmt.Fprintln(stderr, errorStyle.Render(MsgErrorPrefix+err.Error()))
	if errors.IsErrorCode(err, errors.ErrUsage) {
		fmt.Fprintln(stderr, MsgUsageHint)
	}
	return 1
}
