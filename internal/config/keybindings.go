package config

import (
	"strings"
)

// Keybindings holds all configurable keyboard shortcuts of interactive mode.
// Keys use Bubble Tea key string format (e.g., "ctrl+c", "enter", "esc").
type Keybindings struct {
	// Global keybindings (work in most views)
	Global GlobalKeys `toml:"global" mapstructure:"global"`

	// Todo list keybindings
	List ListKeys `toml:"list" mapstructure:"list"`

	// Project list keybindings
	Projects ProjectKeys `toml:"projects" mapstructure:"projects"`

	// Text input keybindings
	Form FormKeys `toml:"form" mapstructure:"form"`
}

// GlobalKeys are keybindings that work across multiple views.
type GlobalKeys struct {
	Quit        string `toml:"quit" mapstructure:"quit"`         // Quit/back
	QuitAlt     string `toml:"quit_alt" mapstructure:"quit_alt"` // Alternative quit key
	MoveUp      string `toml:"move_up" mapstructure:"move_up"`
	MoveDown    string `toml:"move_down" mapstructure:"move_down"`
	MoveUpAlt   string `toml:"move_up_alt" mapstructure:"move_up_alt"`
	MoveDownAlt string `toml:"move_down_alt" mapstructure:"move_down_alt"`
	Select      string `toml:"select" mapstructure:"select"`
	Confirm     string `toml:"confirm" mapstructure:"confirm"` // Answer yes in confirmations
}

// ListKeys are keybindings for the todo list.
type ListKeys struct {
	Add      string `toml:"add" mapstructure:"add"`
	Done     string `toml:"done" mapstructure:"done"`
	Delete   string `toml:"delete" mapstructure:"delete"`
	Clear    string `toml:"clear" mapstructure:"clear"`
	Projects string `toml:"projects" mapstructure:"projects"` // Open the project list
	Top      string `toml:"top" mapstructure:"top"`
	Bottom   string `toml:"bottom" mapstructure:"bottom"`
}

// ProjectKeys are keybindings for the project list.
type ProjectKeys struct {
	Switch string `toml:"switch" mapstructure:"switch"`
	Add    string `toml:"add" mapstructure:"add"`
	Delete string `toml:"delete" mapstructure:"delete"`
}

// FormKeys are keybindings for text inputs.
type FormKeys struct {
	Submit string `toml:"submit" mapstructure:"submit"`
	Cancel string `toml:"cancel" mapstructure:"cancel"`
}

// DefaultKeybindings returns the default keybinding configuration.
func DefaultKeybindings() *Keybindings {
	return &Keybindings{
		Global: GlobalKeys{
			Quit:        "esc",
			QuitAlt:     "q",
			MoveUp:      "k",
			MoveDown:    "j",
			MoveUpAlt:   "up",
			MoveDownAlt: "down",
			Select:      "enter",
			Confirm:     "y",
		},
		List: ListKeys{
			Add:      "a",
			Done:     "x",
			Delete:   "d",
			Clear:    "shift+c",
			Projects: "p",
			Top:      "g",
			Bottom:   "G",
		},
		Projects: ProjectKeys{
			Switch: "enter",
			Add:    "a",
			Delete: "d",
		},
		Form: FormKeys{
			Submit: "enter",
			Cancel: "esc",
		},
	}
}

// mergeWithDefaults fills in any missing keybindings with defaults.
// This handles config files written before a binding existed.
func mergeWithDefaults(kb *Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	result := *kb

	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}

	// Global
	fill(&result.Global.Quit, defaults.Global.Quit)
	fill(&result.Global.QuitAlt, defaults.Global.QuitAlt)
	fill(&result.Global.MoveUp, defaults.Global.MoveUp)
	fill(&result.Global.MoveDown, defaults.Global.MoveDown)
	fill(&result.Global.MoveUpAlt, defaults.Global.MoveUpAlt)
	fill(&result.Global.MoveDownAlt, defaults.Global.MoveDownAlt)
	fill(&result.Global.Select, defaults.Global.Select)
	fill(&result.Global.Confirm, defaults.Global.Confirm)

	// List
	fill(&result.List.Add, defaults.List.Add)
	fill(&result.List.Done, defaults.List.Done)
	fill(&result.List.Delete, defaults.List.Delete)
	fill(&result.List.Clear, defaults.List.Clear)
	fill(&result.List.Projects, defaults.List.Projects)
	fill(&result.List.Top, defaults.List.Top)
	fill(&result.List.Bottom, defaults.List.Bottom)

	// Projects
	fill(&result.Projects.Switch, defaults.Projects.Switch)
	fill(&result.Projects.Add, defaults.Projects.Add)
	fill(&result.Projects.Delete, defaults.Projects.Delete)

	// Form
	fill(&result.Form.Submit, defaults.Form.Submit)
	fill(&result.Form.Cancel, defaults.Form.Cancel)

	return result
}

// Matches checks if a key string matches a keybinding.
// It handles shift+letter bindings by converting them to uppercase.
// For example, "shift+a" in config matches "A" from Bubble Tea.
func Matches(key string, binding string) bool {
	return key == normalizeBinding(binding)
}

// MatchesAny checks if a key matches any of the provided bindings.
func MatchesAny(key string, bindings ...string) bool {
	for _, b := range bindings {
		if key == normalizeBinding(b) {
			return true
		}
	}
	return false
}

// Display returns a binding the way it is shown in help lines.
func Display(binding string) string {
	return normalizeBinding(binding)
}

// normalizeBinding converts a binding string to match Bubble Tea's key format.
// Specifically, "shift+x" becomes "X" for letter keys.
func normalizeBinding(binding string) string {
	if strings.HasPrefix(binding, "shift+") {
		letter := strings.TrimPrefix(binding, "shift+")
		if len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
			return strings.ToUpper(letter)
		}
	}
	return binding
}
