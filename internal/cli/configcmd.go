package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// The config file may not exist yet, so only defaults, environment
		// and flags are resolved here.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			config.Prepare(a.v)
			return nil
		},
	}

	cmd.AddCommand(a.newConfigInitCmd(), a.newConfigPathCmd())
	return cmd
}

func (a *app) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with every option at its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigFile(a.v)
			if err != nil {
				return err
			}
			if err := config.WriteExample(path, a.v.GetString(config.KeyStorePath), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", styles.Success.Render(styles.IconDone), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func (a *app) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where the config and store files live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigFile(a.v)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err != nil {
				path += styles.Dim.Render(" (not created)")
			}

			storePath := config.ExpandPath(a.v.GetString(config.KeyStorePath))
			if !store.New(storePath).Exists() {
				storePath += styles.Dim.Render(" (not created)")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render("config:"), path)
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render("store: "), storePath)
			return nil
		},
	}
}
