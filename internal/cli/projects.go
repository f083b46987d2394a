package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ihatemodels/todoterm/internal/git"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/render"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

func (a *app) newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProjectList(cmd)
		},
	}

	cmd.AddCommand(
		a.newProjectAddCmd(),
		a.newProjectRemoveCmd(),
		a.newProjectSwitchCmd(),
		a.newProjectListCmd(),
	)
	return cmd
}

func (a *app) newProjectAddCmd() *cobra.Command {
	var (
		spec     todo.ProjectSpec
		switchTo bool
	)

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: "Create a project",
		Long: `Create a project. Without a name, the project is named after the git
repository of the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Name = strings.TrimSpace(strings.Join(args, " "))
			if spec.Name == "" {
				repo, err := git.GetRepo()
				if errors.Is(err, git.ErrNotRepo) {
					return errors.New("a project name is required outside a git repository")
				}
				if err != nil {
					return err
				}
				spec.Name = repo.Name
				if spec.Description == "" {
					spec.Description = repo.Root
				}
				a.logger.Debug("project named after repository", "root", repo.Root)
			}

			var p todo.Project
			err := a.store.Update(func(d *todo.Document) error {
				created, err := todo.AddProject(d, spec)
				if err != nil {
					return err
				}
				p = *created
				if switchTo {
					return todo.SwitchProject(d, created.ID)
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Created project %s (%s)\n",
				styles.Success.Render(styles.IconAdd), styles.Project(p.Name, p.Color), p.ID)
			if switchTo {
				fmt.Fprintf(out, "%s Switched to %s\n",
					styles.Success.Render(styles.IconDone), styles.Project(p.Name, p.Color))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&spec.Description, "description", "d", "", "Project description")
	f.StringVarP(&spec.Color, "color", "c", "", "Project color: a name, #rrggbb or an ANSI number")
	f.BoolVarP(&switchTo, "switch", "s", false, "Make the new project current")
	return cmd
}

func (a *app) newProjectRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a project and its todos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			// Run the removal on a loaded copy first so a protected or
			// unknown project fails before asking.
			doc, err := a.store.Load()
			if err != nil {
				return err
			}
			p, err := todo.RemoveProject(doc, id)
			if err != nil {
				return err
			}

			ok, err := a.confirm(cmd, yes,
				fmt.Sprintf("Are you sure you want to remove project %q?", p.Name),
				fmt.Sprintf("Its %d todos will be deleted.", len(p.Todos)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Status.Render("Project kept."))
				return nil
			}

			var (
				removed    *todo.Project
				wasCurrent bool
			)
			err = a.store.Update(func(d *todo.Document) error {
				wasCurrent = d.Settings.CurrentProject == id
				var err error
				removed, err = todo.RemoveProject(d, id)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Removed project %s and its %d todos\n",
				styles.Error.Render(styles.IconRemove), removed.Name, len(removed.Todos))
			if wasCurrent {
				fmt.Fprintln(out, styles.Status.Render("Switched back to the inbox."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) newProjectSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "switch <id>",
		Aliases: []string{"use"},
		Short:   "Make a project current",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *todo.Project
			err := a.store.Update(func(d *todo.Document) error {
				if err := todo.SwitchProject(d, args[0]); err != nil {
					return err
				}
				var err error
				p, err = d.Current()
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to %s (%s)\n",
				styles.Success.Render(styles.IconDone), styles.Project(p.Name, p.Color), p.ID)
			return nil
		},
	}
}

func (a *app) newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProjectList(cmd)
		},
	}
}

func (a *app) runProjectList(cmd *cobra.Command) error {
	doc, err := a.store.Load()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.ProjectTable(todo.ListProjects(doc)))
	return nil
}
