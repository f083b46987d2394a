package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/confirm"
	"github.com/ihatemodels/todoterm/internal/ui/render"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <task...>",
		Aliases: []string{"a"},
		Short:   "Add a todo",
		Example: `  todoterm add "buy milk"
  todoterm add -p work review the pull request`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				added todo.Todo
				name  string
			)
			err := a.store.Update(func(d *todo.Document) error {
				p, err := d.Project(a.project)
				if err != nil {
					return err
				}
				added, err = todo.AddTodo(d, p.ID, strings.Join(args, " "))
				name = styles.Project(p.Name, p.Color)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added to %s: %s\n",
				styles.Success.Render(styles.IconAdd), name, added.Task)
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the todos of a project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *app) runList(cmd *cobra.Command) error {
	doc, err := a.store.Load()
	if err != nil {
		return err
	}
	p, err := doc.Project(a.project)
	if err != nil {
		return err
	}
	list, err := todo.ListTodos(doc, p.ID)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), render.TodoList(p, list))
	return nil
}

func (a *app) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <n>",
		Aliases: []string{"d"},
		Short:   "Mark a todo as done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			var done todo.Todo
			err = a.store.Update(func(d *todo.Document) error {
				var err error
				done, err = todo.MarkDone(d, a.project, pos)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed: %s\n",
				styles.Success.Render(styles.IconDone), styles.DoneTask.Render(done.Task))
			return nil
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			doc, err := a.store.Load()
			if err != nil {
				return err
			}
			target, err := todoAt(doc, a.project, pos)
			if err != nil {
				return err
			}

			ok, err := a.confirm(cmd, yes, fmt.Sprintf("Are you sure you want to remove %q?", target.Task), "")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Status.Render("Todo kept safely!"))
				return nil
			}

			var task string
			err = a.store.Update(func(d *todo.Document) error {
				current, err := todoAt(d, a.project, pos)
				if err != nil {
					return err
				}
				if current.ID != target.ID {
					return errChanged
				}
				task, err = todo.RemoveTodo(d, a.project, pos)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed: %s\n", styles.Error.Render(styles.IconRemove), task)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every todo of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.store.Load()
			if err != nil {
				return err
			}
			p, err := doc.Project(a.project)
			if err != nil {
				return err
			}
			if len(p.Todos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Status.Render("Your todo list is already empty."))
				return nil
			}

			ok, err := a.confirm(cmd, yes,
				fmt.Sprintf("Are you sure you want to clear ALL %d todos? This cannot be undone!", len(p.Todos)),
				"Project: "+p.Name)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Status.Render("Your todos are safe!"))
				return nil
			}

			// Clear the project that was confirmed even if the current
			// project changed meanwhile.
			id := p.ID
			var n int
			err = a.store.Update(func(d *todo.Document) error {
				var err error
				n, err = todo.ClearTodos(d, id)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %d todos from %s\n",
				styles.Success.Render(styles.IconDone), n, styles.Project(p.Name, p.Color))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm asks the user a yes/no question. It fails when no answer can be
// read from a terminal and yes was not given.
func (a *app) confirm(cmd *cobra.Command, yes bool, prompt, detail string) (bool, error) {
	if yes {
		return true, nil
	}
	if !a.isTerminal(cmd) {
		return false, errNeedsConfirmation
	}
	m := confirm.New(prompt, detail, a.cfg.Keys().Global.Confirm)
	return confirm.Ask(cmd.InOrStdin(), cmd.OutOrStdout(), m)
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", todo.ErrIndexOutOfRange, arg)
	}
	return n, nil
}

// todoAt returns the todo at the 1-based position without changing d.
func todoAt(d *todo.Document, projectID string, pos int) (todo.Todo, error) {
	list, err := todo.ListTodos(d, projectID)
	if err != nil {
		return todo.Todo{}, err
	}
	if pos < 1 || pos > len(list.Todos) {
		return todo.Todo{}, &todo.PositionError{Position: pos, Len: len(list.Todos)}
	}
	return list.Todos[pos-1], nil
}
