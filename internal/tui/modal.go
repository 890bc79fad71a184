package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxWidth = 88
	modalMinWidth = 32
	modalPadX     = 2
)

// modalWidth is the outer width of the form box, border included.
func modalWidth(termW int) int {
	w := termW - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// modalBodyWidth is the width available to content inside the box.
func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 2 - 2*modalPadX
}

func renderModalBox(termW int, title, body string) string {
	bodyW := modalBodyWidth(termW)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Render(title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, modalPadX).
		Width(bodyW + 2*modalPadX).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg)

	return box.Render(strings.Join([]string{header, "", body}, "\n"))
}
