package tui

import (
	"errors"
	"log"
	"strings"
	"time"

	"acetics-cli/internal/model"
	"acetics-cli/internal/timeutil"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgRequired    = "Le champ est obligatoire"
	msgInvalidDate = "Please type a valid date."
	msgInvalidTime = "Please type a valid time (HH:MM)."
)

// formStep is a prompt of the task form. Steps only move forward.
type formStep int

const (
	stepStart formStep = iota
	stepDescription
	stepTitle
	stepEnd
	stepAssignee
	stepStatus
	stepDueDate
	stepDueTime
	stepConfirm
	stepDone
)

func (s formStep) String() string {
	switch s {
	case stepStart:
		return "start"
	case stepDescription:
		return "description"
	case stepTitle:
		return "title"
	case stepEnd:
		return "end"
	case stepAssignee:
		return "assignee"
	case stepStatus:
		return "status"
	case stepDueDate:
		return "due-date"
	case stepDueTime:
		return "due-time"
	case stepConfirm:
		return "confirm"
	default:
		return "done"
	}
}

func (s formStep) label() string {
	switch s {
	case stepStart:
		return "Nouvelle tâche - heure de début:"
	case stepDescription:
		return "Description:"
	case stepTitle:
		return "Titre:"
	case stepEnd:
		return "Nouvelle tâche - heure de fin:"
	case stepAssignee:
		return "Assigner à:"
	case stepStatus:
		return "Statut:"
	case stepDueDate:
		return "Date d'échéance:"
	case stepDueTime:
		return "Heure d'échéance:"
	case stepConfirm:
		return "Voulez-vous enregistrer la tâche ?"
	default:
		return ""
	}
}

type formOutcome int

const (
	outcomePending formOutcome = iota
	outcomeSubmitted
	outcomeAborted
	outcomeInterrupted
)

func (o formOutcome) String() string {
	switch o {
	case outcomeSubmitted:
		return "submitted"
	case outcomeAborted:
		return "aborted"
	case outcomeInterrupted:
		return "interrupted"
	default:
		return "pending"
	}
}

// statusChoices is the status picker order; the cursor starts on Closed for
// the default staff and on Ongoing for everyone else.
var statusChoices = []model.TaskStatus{model.TaskStatusClosed, model.TaskStatusOngoing}

type staffItem struct {
	staff     model.Staff
	isDefault bool
}

func (i staffItem) FilterValue() string { return i.staff.Name }
func (i staffItem) Title() string {
	if i.isDefault {
		return i.staff.String() + "  (par défaut)"
	}
	return i.staff.String()
}
func (i staffItem) Description() string { return "" }

type statusItem struct {
	status model.TaskStatus
}

func (i statusItem) FilterValue() string { return i.status.String() }
func (i statusItem) Title() string       { return i.status.String() }
func (i statusItem) Description() string { return "" }

type formModel struct {
	step formStep

	width  int
	height int

	now      func() time.Time
	roster   Roster
	taskType model.TaskType
	priority model.TaskPriority
	keys     formKeyMap

	input        textinput.Model
	textarea     textarea.Model
	staffList    list.Model
	statusList   list.Model
	confirmFocus confirmModalFocus

	// Answers, filled as steps complete.
	start       timeutil.Clock
	end         timeutil.Clock
	description string
	title       string
	assignee    model.Staff
	status      model.TaskStatus
	dueDay      time.Time
	due         time.Time

	// errLine is the validation message of the current prompt.
	errLine    string
	minibuffer string

	externalEditorPath   string
	externalEditorBefore string

	outcome formOutcome
	task    model.Task
}

func newFormModel(opts FormOptions) (formModel, error) {
	if opts.Roster == nil {
		return formModel{}, errors.New("no staff roster")
	}
	staffs := opts.Roster.Staffs()
	if len(staffs) == 0 {
		return formModel{}, errors.New("staff roster is empty")
	}

	m := formModel{
		now:          opts.Now,
		roster:       opts.Roster,
		taskType:     opts.Type,
		priority:     opts.Priority,
		keys:         newFormKeyMap(),
		confirmFocus: confirmFocusConfirm,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.taskType == 0 {
		m.taskType = model.TaskTypeCustomerCall
	}
	if m.priority == "" {
		m.priority = model.TaskPriorityNormal
	}

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 256
	m.input.Width = 48

	m.textarea = textarea.New()
	// No size limits: bubbles v0.20 caps CharLimit and MaxHeight by default.
	m.textarea.CharLimit = 0
	m.textarea.MaxHeight = 0
	m.textarea.ShowLineNumbers = true
	m.textarea.Placeholder = "Markdown"
	m.textarea.FocusedStyle.CursorLine = m.textarea.BlurredStyle.CursorLine

	staffItems := make([]list.Item, 0, len(staffs))
	for _, s := range staffs {
		staffItems = append(staffItems, staffItem{staff: s, isDefault: opts.Roster.IsDefaultStaff(s)})
	}
	m.staffList = newPickerList("Staff", staffItems)
	idx := opts.Roster.DefaultStaffIndex()
	if idx < 0 || idx >= len(staffs) {
		idx = 0
	}
	m.staffList.Select(idx)

	statusItems := make([]list.Item, 0, len(statusChoices))
	for _, st := range statusChoices {
		statusItems = append(statusItems, statusItem{status: st})
	}
	m.statusList = newPickerList("Status", statusItems)

	(&m).enterStep(stepStart)
	return m, nil
}

func (m formModel) Init() tea.Cmd { return textinput.Blink }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		(&m).resize()
		return m, nil

	case externalEditorDoneMsg:
		(&m).applyExternalEditorResult(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			return m.finish(outcomeInterrupted)
		}
		switch m.step {
		case stepStart, stepEnd, stepDueTime:
			return m.updateClock(msg)
		case stepDescription:
			return m.updateDescription(msg)
		case stepTitle:
			return m.updateTitle(msg)
		case stepAssignee:
			return m.updateAssignee(msg)
		case stepStatus:
			return m.updateStatus(msg)
		case stepDueDate:
			return m.updateDueDate(msg)
		case stepConfirm:
			return m.updateConfirm(msg)
		}
		return m, nil
	}

	// Cursor blink and other ticks go to the focused input.
	var cmd tea.Cmd
	switch m.step {
	case stepDescription:
		m.textarea, cmd = m.textarea.Update(msg)
	case stepStart, stepTitle, stepEnd, stepDueDate, stepDueTime:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// enterStep moves to s and prepares its input with the step's default.
func (m *formModel) enterStep(s formStep) {
	log.Printf("form: step %s", s)
	m.step = s
	m.errLine = ""
	m.minibuffer = ""
	m.input.Blur()
	m.textarea.Blur()

	now := m.now()
	switch s {
	case stepStart, stepEnd:
		m.openInput("HH:MM", timeutil.ClockOf(now).String())
	case stepDescription:
		m.textarea.SetValue(m.description)
		m.textarea.Focus()
	case stepTitle:
		m.openInput("Titre", m.title)
	case stepStatus:
		cursor := 1
		if m.roster.IsDefaultStaff(m.assignee) {
			cursor = 0
		}
		m.statusList.Select(cursor)
	case stepDueDate:
		m.openInput("jj/mm/aaaa", timeutil.FormatDueDate(now))
	case stepDueTime:
		m.openInput("HH:MM", timeutil.DefaultDueClock(now).String())
	case stepConfirm:
		m.confirmFocus = confirmFocusConfirm
	}
}

func (m *formModel) openInput(placeholder, value string) {
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *formModel) resize() {
	bodyW := modalBodyWidth(m.width)
	m.input.Width = max(10, bodyW-4)
	m.textarea.SetWidth(bodyW)
	m.textarea.SetHeight(min(max(m.height-16, 4), 20))
	m.staffList.SetSize(bodyW, pickerHeight(len(m.staffList.Items())))
	m.statusList.SetSize(bodyW, pickerHeight(len(m.statusList.Items())))
}

func (m formModel) finish(o formOutcome) (tea.Model, tea.Cmd) {
	m.outcome = o
	if o == outcomeSubmitted {
		m.task = m.buildTask()
	}
	m.step = stepDone
	log.Printf("form: %s", o)
	return m, tea.Quit
}

func (m formModel) updateClock(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.Submit):
		c, err := timeutil.ParseClock(m.input.Value())
		if err != nil {
			m.errLine = msgInvalidTime
			return m, nil
		}
		switch m.step {
		case stepStart:
			m.start = c
			(&m).enterStep(stepDescription)
		case stepEnd:
			m.end = c
			(&m).enterStep(stepAssignee)
		case stepDueTime:
			m.due = timeutil.CombineDateClock(m.dueDay, c)
			(&m).enterStep(stepConfirm)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m formModel) updateDescription(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Skip):
		m.description = ""
		(&m).enterStep(stepTitle)
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.description = m.textarea.Value()
		if strings.TrimSpace(m.description) == "" {
			m.description = ""
		}
		(&m).enterStep(stepTitle)
		return m, nil
	case key.Matches(msg, m.keys.Editor):
		cmd, err := (&m).openExternalEditorForTextarea()
		if err != nil {
			m.minibuffer = "Éditeur en échec : " + err.Error()
			return m, nil
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m formModel) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.errLine = msgRequired
			return m, nil
		}
		m.title = title
		(&m).enterStep(stepEnd)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m formModel) updateAssignee(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.Submit):
		it, ok := m.staffList.SelectedItem().(staffItem)
		if !ok {
			return m, nil
		}
		m.assignee = it.staff
		(&m).enterStep(stepStatus)
		return m, nil
	}
	var cmd tea.Cmd
	m.staffList, cmd = m.staffList.Update(msg)
	return m, cmd
}

func (m formModel) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.Submit):
		it, ok := m.statusList.SelectedItem().(statusItem)
		if !ok {
			return m, nil
		}
		m.status = it.status
		if m.status == model.TaskStatusClosed {
			// Closed tasks are due now; the due prompts are skipped.
			(&m).enterStep(stepConfirm)
		} else {
			(&m).enterStep(stepDueDate)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.statusList, cmd = m.statusList.Update(msg)
	return m, cmd
}

func (m formModel) updateDueDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.NextDay):
		(&m).shiftDueDate(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevDay):
		(&m).shiftDueDate(-1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		d, err := timeutil.ParseDueDate(m.input.Value(), m.now().Location())
		if err != nil {
			m.errLine = msgInvalidDate
			return m, nil
		}
		m.dueDay = d
		(&m).enterStep(stepDueTime)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *formModel) shiftDueDate(days int) {
	m.input.SetValue(timeutil.ShiftDate(m.input.Value(), days))
	m.input.CursorEnd()
	m.errLine = ""
}

func (m formModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.No):
		return m.finish(outcomeAborted)
	case key.Matches(msg, m.keys.Yes):
		return m.finish(outcomeSubmitted)
	case key.Matches(msg, m.keys.Toggle):
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.confirmFocus == confirmFocusConfirm {
			return m.finish(outcomeSubmitted)
		}
		return m.finish(outcomeAborted)
	}
	return m, nil
}

func (m formModel) workTime() string {
	return timeutil.FormatHHMM(timeutil.WorkDuration(m.start, m.end))
}

// dueDate is the due timestamp the task will carry: now for Closed tasks,
// the entered date and time otherwise.
func (m formModel) dueDate(now time.Time) time.Time {
	if m.status == model.TaskStatusClosed {
		return now
	}
	return m.due
}

func (m formModel) buildTask() model.Task {
	now := m.now()
	workTime := m.workTime()
	return model.NewTaskAt(m.taskType, m.title, m.description, now).
		WithAssignedStaff(m.assignee).
		WithWorkTime(&workTime).
		WithPriority(m.priority).
		WithStatus(m.status).
		WithDueDate(m.dueDate(now))
}

func (m formModel) result() (FormResult, error) {
	switch m.outcome {
	case outcomeSubmitted:
		return FormResult{Task: m.task}, nil
	case outcomeAborted:
		return FormResult{}, ErrFormAborted
	case outcomeInterrupted:
		return FormResult{}, ErrFormInterrupted
	default:
		return FormResult{}, errors.New("task form ended without a result")
	}
}
