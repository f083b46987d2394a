package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ihatemodels/todoterm/internal/export"
)

func (a *app) newExportCmd() *cobra.Command {
	var (
		format string
		all    bool
	)

	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a project or the whole store",
		Example: `  todoterm export --format yaml
  todoterm export --all > backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			doc, err := a.store.Load()
			if err != nil {
				return err
			}
			if all {
				return export.Document(cmd.OutOrStdout(), f, doc)
			}
			p, err := doc.Project(a.project)
			if err != nil {
				return err
			}
			return export.Project(cmd.OutOrStdout(), f, p)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.JSON), "Output format: "+strings.Join(names, "|"))
	cmd.Flags().BoolVar(&all, "all", false, "Export every project and the settings")
	return cmd
}
