package components

import (
	"fmt"
	"strings"

	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a single key and its description for the keybinding bar
type KeyBinding struct {
	Key  string
	Desc string
}

// keyStyle is used to highlight keyboard shortcuts in UI
var keyStyle = lipgloss.NewStyle().
	Foreground(styles.Accent).
	Bold(true)

// KeyBindingsBar creates a styled footer showing a set of keybindings
// width: The width of the screen to center the bar
// bindings: The list of keybindings to display
func KeyBindingsBar(width int, bindings []KeyBinding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s: %s",
			keyStyle.Render(b.Key),
			b.Desc))
	}

	keyBar := styles.Info.Render(strings.Join(parts, " • "))
	return styles.CenteredText(width, keyBar)
}

// Bind looks up the primary key of action in a keybinding context, so footers stay in sync with the tables
func Bind(context kb.ContextName, action kb.Action, desc string) KeyBinding {
	return KeyBinding{
		Key:  kb.DisplayKey(kb.GetActionKey(action, kb.ContextBindings[context])),
		Desc: desc,
	}
}
