package models

import (
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
)

// status is the one line of feedback shown above a view's footer
type status struct {
	text    string
	isError bool
}

func newStatus(msg StatusMsg) status {
	return status{text: msg.Text, isError: msg.IsError}
}

func errorStatus(err error) status {
	return status{text: errorText(err), isError: true}
}

func (s status) View(width int) string {
	if s.text == "" {
		return ""
	}
	if s.isError {
		return styles.CenteredText(width, styles.Error.Render(s.text))
	}
	return styles.CenteredText(width, styles.Success.Render(s.text))
}
