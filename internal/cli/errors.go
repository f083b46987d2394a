package cli

import (
	"errors"
	"fmt"

	"github.com/ihatemodels/todoterm/internal/config"
	"github.com/ihatemodels/todoterm/internal/store"
	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/confirm"
)

var (
	errNeedsConfirmation = errors.New("confirmation required: run in a terminal or pass --yes")
	errChanged           = errors.New("the todo list changed while waiting for confirmation, nothing was removed")
)

// describe turns an error into the message shown to the user.
func describe(err error) string {
	var pe *todo.PositionError
	switch {
	case errors.As(err, &pe):
		if pe.Len == 0 {
			return "Invalid todo number! The project has no todos."
		}
		return fmt.Sprintf("Invalid todo number %d! Please use a number between 1 and %d.", pe.Position, pe.Len)
	case errors.Is(err, todo.ErrProtectedProject):
		return "The inbox cannot be removed."
	case errors.Is(err, todo.ErrEmptyTask):
		return "Task cannot be empty."
	case errors.Is(err, store.ErrCorrupt):
		return err.Error() + "\nThe file was left untouched. Fix or move it and try again."
	case errors.Is(err, config.ErrConfigExists):
		return err.Error() + " (use --force to overwrite)"
	case errors.Is(err, confirm.ErrAborted):
		return "Aborted."
	}
	return err.Error()
}
