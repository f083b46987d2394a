package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	tui "github.com/ihatemodels/todoterm/internal/ui/app"
	"github.com/ihatemodels/todoterm/internal/watch"
)

func (a *app) newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Open the interactive mode",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	// Fail on an unreadable store before taking over the screen.
	if _, err := a.store.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var changes <-chan watch.Event
	w := watch.New(a.store.Path(), a.logger)
	if err := w.Start(ctx); err != nil {
		a.logger.Warn("not watching the store for changes", "error", err)
	} else {
		changes = w.Events()
	}

	m := tui.New(a.store, a.cfg, a.version, changes)
	return tui.Run(m,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}
