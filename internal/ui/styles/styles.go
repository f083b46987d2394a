// Package styles provides shared colors and styling for the TUI and the
// command output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dracula color palette
var (
	Purple = lipgloss.Color("#BD93F9")
	Cyan   = lipgloss.Color("#8BE9FD")
	Pink   = lipgloss.Color("#FF79C6")
	Green  = lipgloss.Color("#50FA7B")
	Yellow = lipgloss.Color("#F1FA8C")
	Red    = lipgloss.Color("#FF5555")
	Orange = lipgloss.Color("#FFB86C")
	Subtle = lipgloss.Color("#6272A4")
	White  = lipgloss.Color("#F8F8F2")
)

// Common styles
var (
	Title = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	Item = lipgloss.NewStyle().
		Foreground(White)

	Selected = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	Help = lipgloss.NewStyle().
		Foreground(Subtle)

	Label = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	Value = lipgloss.NewStyle().
		Foreground(White)

	Input = lipgloss.NewStyle().
		Foreground(Yellow).
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Purple)

	Confirm = lipgloss.NewStyle().
		Foreground(Yellow).
		Bold(true)

	Banner = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	Version = lipgloss.NewStyle().
		Foreground(Subtle).
		Italic(true)

	Status = lipgloss.NewStyle().
		Foreground(Yellow)

	Dim = lipgloss.NewStyle().
		Foreground(Subtle)

	Done = lipgloss.NewStyle().
		Foreground(Green)

	Pending = lipgloss.NewStyle().
		Foreground(Yellow)

	DoneTask = lipgloss.NewStyle().
			Foreground(Subtle).
			Strikethrough(true)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)
)

// Icons used in lists and messages.
const (
	IconDone    = "✔"
	IconPending = "○"
	IconAdd     = "+"
	IconRemove  = "✖"
	IconProject = "■"
)

var projectColors = map[string]lipgloss.Color{
	"purple":  Purple,
	"cyan":    Cyan,
	"pink":    Pink,
	"magenta": Pink,
	"green":   Green,
	"yellow":  Yellow,
	"red":     Red,
	"orange":  Orange,
	"gray":    Subtle,
	"grey":    Subtle,
	"white":   White,
}

// ProjectColor maps a project's color name to a palette color. Hex values
// ("#ff8800") and ANSI numbers are passed through; unknown names fall back
// to cyan.
func ProjectColor(name string) lipgloss.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := projectColors[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") || isNumber(name) {
		return lipgloss.Color(name)
	}
	return Cyan
}

// Project renders a project name in its own color.
func Project(name, color string) string {
	return lipgloss.NewStyle().Foreground(ProjectColor(color)).Bold(true).Render(name)
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
