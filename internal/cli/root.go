// Package cli wires the todoterm command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/logging"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

// app holds the state shared by every command of one invocation.
type app struct {
	version string
	v       *viper.Viper

	cfg    *config.Config
	logger *log.Logger
	store  *store.Store

	// project is the --project flag; empty means the current project.
	project string

	isTerminal func(cmd *cobra.Command) bool
}

func newApp(version string) *app {
	return &app{
		version:    version,
		v:          viper.New(),
		logger:     logging.Discard(),
		isTerminal: stdioIsTerminal,
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return execute(ctx, newRootCmd(newApp(version)), os.Args[1:])
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Error.Render("Error: "+describe(err)))
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todoterm",
		Short: "Todo lists grouped in projects, right in the terminal",
		Long: `todoterm keeps todos grouped in projects in a single JSON file.

Run without arguments to open the interactive mode, or use the
subcommands below for scripting.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.isTerminal(cmd) {
				return a.runInteractive(cmd)
			}
			return a.runList(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file path (default $XDG_CONFIG_HOME/todoterm/config.toml)")
	pf.String("store", "", "Store file path (default ~/"+store.FileName+")")
	pf.String("log-level", "", "Log level: debug|info|warn|error")
	pf.String("log-format", "", "Log format: text|json|logfmt")
	pf.StringVarP(&a.project, "project", "p", "", "Project ID for todo commands (default: the current project)")

	_ = a.v.BindPFlag(config.KeyConfigFile, pf.Lookup("config"))
	_ = a.v.BindPFlag(config.KeyStorePath, pf.Lookup("store"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	cmd.AddCommand(
		a.newAddCmd(),
		a.newListCmd(),
		a.newDoneCmd(),
		a.newRemoveCmd(),
		a.newClearCmd(),
		a.newInteractiveCmd(),
		a.newProjectCmd(),
		a.newExportCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)

	return cmd
}

// setup loads the configuration and opens the store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, err := logging.FromConfig(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.store = store.New(cfg.StorePath, store.WithLogger(logger))

	logger.Debug("configuration loaded", "config", cfg.File, "store", cfg.StorePath)
	return nil
}

// stdioIsTerminal reports whether both the command's input and output are
// attached to a terminal.
func stdioIsTerminal(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isTerminal(in.Fd()) && isTerminal(out.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
