package tui

import (
	"errors"
	"time"

	"acetics-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrFormAborted reports that the operator declined or cancelled the form.
	// Nothing was submitted; callers treat it as a clean exit.
	ErrFormAborted = errors.New("task form aborted")
	// ErrFormInterrupted reports ctrl+c.
	ErrFormInterrupted = errors.New("task form interrupted")
)

// Roster is the staff configuration the form picks an assignee from.
type Roster interface {
	Staffs() []model.Staff
	DefaultStaffIndex() int
	IsDefaultStaff(model.Staff) bool
}

type FormOptions struct {
	Type     model.TaskType
	Priority model.TaskPriority
	Roster   Roster
	// Now defaults to time.Now.
	Now func() time.Time
}

type FormResult struct {
	Task model.Task
}

// RunTaskForm runs the task form full-screen and returns the assembled task.
func RunTaskForm(opts FormOptions) (FormResult, error) {
	applyThemePreference()
	applyColorProfilePreference()

	m, err := newFormModel(opts)
	if err != nil {
		return FormResult{}, err
	}
	mm, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if errors.Is(err, tea.ErrInterrupted) {
		return FormResult{}, ErrFormInterrupted
	}
	if err != nil {
		return FormResult{}, err
	}
	return mm.(formModel).result()
}
