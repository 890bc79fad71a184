package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type formKeyMap struct {
	Submit    key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Skip      key.Binding
	Interrupt key.Binding
	Editor    key.Binding
	NextDay   key.Binding
	PrevDay   key.Binding
	Toggle    key.Binding
	Yes       key.Binding
	No        key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "valider")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "valider")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "abandonner")),
		Skip:      key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "passer")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quitter")),
		Editor:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "éditeur")),
		NextDay:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "+1 jour")),
		PrevDay:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "-1 jour")),
		Toggle:    key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "changer")),
		Yes:       key.NewBinding(key.WithKeys("y", "Y", "o", "O"), key.WithHelp("o", "oui")),
		No:        key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "non")),
	}
}

// helpLine renders "key: desc" pairs for the given bindings.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "   ")
}
