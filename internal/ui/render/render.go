// Package render draws todo and project listings as lipgloss tables for
// plain command output.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ihatemodels/todoterm/internal/todo"
	"github.com/ihatemodels/todoterm/internal/ui/styles"
)

// DateLayout formats creation and completion times.
const DateLayout = "Jan 2, 2006 15:04"

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Purple))
}

func headerStyle() lipgloss.Style {
	return styles.Label.Padding(0, 1)
}

// Status returns the done/pending marker of a todo.
func Status(t todo.Todo) string {
	if t.Completed {
		return styles.Done.Render(styles.IconDone + " Done")
	}
	return styles.Pending.Render(styles.IconPending + " Pending")
}

// Task renders a todo's text, struck through once completed.
func Task(t todo.Todo) string {
	if t.Completed {
		return styles.DoneTask.Render(t.Task)
	}
	return styles.Item.Render(t.Task)
}

// TodoTable renders todos with their 1-based positions.
func TodoTable(todos []todo.Todo) string {
	rows := make([][]string, 0, len(todos))
	for i, t := range todos {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			Status(t),
			Task(t),
			t.CreatedAt.Local().Format(DateLayout),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	return newTable().
		Headers("#", "Status", "Task", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle()
			}
			if col == 0 || col == 3 {
				return cell.Foreground(styles.Subtle)
			}
			return cell
		}).
		String()
}

// Stats renders the total / completed / pending counts.
func Stats(total, completed, pending int) string {
	sep := styles.Dim.Render(" │ ")
	return styles.Value.Render(fmt.Sprintf("Total: %d", total)) + sep +
		styles.Done.Render(fmt.Sprintf("Completed: %d", completed)) + sep +
		styles.Pending.Render(fmt.Sprintf("Pending: %d", pending))
}

// TodoList renders a project's todos, or a hint when there are none.
func TodoList(p *todo.Project, list todo.TodoList) string {
	var b strings.Builder
	b.WriteString(styles.Project(styles.IconProject+" "+p.Name, p.Color))
	if p.Description != "" {
		b.WriteString(styles.Dim.Render("  " + p.Description))
	}
	b.WriteString("\n")

	if list.Total == 0 {
		b.WriteString(styles.Box.Render(
			styles.Value.Render("No todos yet!") + "\n" +
				styles.Dim.Render("Start with: ") + styles.Selected.Render(`todoterm add "your task"`),
		))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(TodoTable(list.Todos))
	b.WriteString("\n")
	b.WriteString(Stats(list.Total, list.Completed, list.Pending))
	b.WriteString("\n")
	return b.String()
}

// ProjectTable renders project summaries, marking the current project.
func ProjectTable(projects []todo.ProjectSummary) string {
	rows := make([][]string, 0, len(projects))
	for _, s := range projects {
		marker := " "
		if s.Current {
			marker = styles.Cursor.Render("▸")
		}
		rows = append(rows, []string{
			marker,
			s.Project.ID,
			styles.Project(s.Project.Name, s.Project.Color),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.Pending),
			s.Project.Description,
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	return newTable().
		Headers("", "ID", "Name", "Todos", "Done", "Pending", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle()
			}
			switch col {
			case 1, 6:
				return cell.Foreground(styles.Subtle)
			case 3, 4, 5:
				return cell.Align(lipgloss.Right)
			}
			return cell
		}).
		String()
}

// Ago describes how long ago t was, for compact listings.
func Ago(t time.Time, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
