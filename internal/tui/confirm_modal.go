package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

// renderConfirmButtons draws the yes/no pair with the focused one highlighted.
// Buttons carry no border: nested borders on a colored background leave
// artifacts on some terminals.
func renderConfirmButtons(confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	active := btn.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm, cancel := btn, btn
	if focus == confirmFocusConfirm {
		confirm = active
	} else {
		cancel = active
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	return lipgloss.JoinHorizontal(lipgloss.Top, confirm.Render(confirmLabel), sep, cancel.Render(cancelLabel))
}
