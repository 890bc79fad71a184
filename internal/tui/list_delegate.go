package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// pickerDelegate renders one item per line, padded to the list width, with a
// cursor mark on the selected row.
type pickerDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newPickerDelegate() pickerDelegate {
	return pickerDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d pickerDelegate) Height() int  { return 1 }
func (d pickerDelegate) Spacing() int { return 0 }
func (d pickerDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	width := m.Width()
	if width < 4 {
		return
	}

	txt := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	}

	style, mark := d.normal, "  "
	if index == m.Index() {
		style, mark = d.selected, "› "
	}

	line := mark + txt
	if lw := xansi.StringWidth(line); lw < width {
		line += strings.Repeat(" ", width-lw)
	} else if lw > width {
		line = xansi.Truncate(line, width, "")
	}
	fmt.Fprint(w, style.Render(line))
}

// newPickerList builds a chrome-less single-choice list.
func newPickerList(title string, items []list.Item) list.Model {
	l := list.New(items, newPickerDelegate(), 48, pickerHeight(len(items)))
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	// Esc and ctrl+c are handled by the form; the list must never quit the program.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}

func pickerHeight(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 12:
		return 12
	default:
		return n
	}
}
