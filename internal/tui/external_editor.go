package tui

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultEditor = "nvim"

type externalEditorDoneMsg struct {
	err error
}

// externalEditorName picks $ACETICS_EDITOR, $VISUAL, $EDITOR, then nvim.
func externalEditorName() string {
	for _, env := range []string{"ACETICS_EDITOR", "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return defaultEditor
}

// openExternalEditorForTextarea writes the description to a temporary .md
// file and suspends the program while the editor runs.
func (m *formModel) openExternalEditorForTextarea() (tea.Cmd, error) {
	editor := externalEditorName()
	args := splitShellWords(editor)
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	f, err := os.CreateTemp("", "acetics-task-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(m.textarea.Value()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	m.externalEditorPath = path
	m.externalEditorBefore = m.textarea.Value()
	log.Printf("form: opening %s on %s", args[0], path)

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

// applyExternalEditorResult loads the edited file back into the textarea and
// removes it. The operator still confirms with ctrl+s.
func (m *formModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	path := m.externalEditorPath
	before := m.externalEditorBefore
	m.externalEditorPath = ""
	m.externalEditorBefore = ""

	if strings.TrimSpace(path) == "" {
		return
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.minibuffer = "Éditeur en échec : " + msg.err.Error()
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		m.minibuffer = "Lecture impossible : " + err.Error()
		return
	}

	after := string(b)
	m.textarea.SetValue(after)
	if strings.TrimSpace(after) == strings.TrimSpace(before) {
		m.minibuffer = fmt.Sprintf("Aucun changement depuis %s", externalEditorName())
		return
	}
	m.minibuffer = fmt.Sprintf("Mis à jour depuis %s (ctrl+s pour valider)", externalEditorName())
}
