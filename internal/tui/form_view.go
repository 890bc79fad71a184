package tui

import (
	"fmt"
	"strings"

	"acetics-cli/internal/model"
	"acetics-cli/internal/timeutil"

	"github.com/charmbracelet/lipgloss"
)

const formTitle = "Nouvelle tâche"

func (m formModel) View() string {
	if m.step == stepDone {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}
	box := renderModalBox(m.width, m.boxTitle(), m.body())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m formModel) boxTitle() string {
	return fmt.Sprintf("%s · %s · %s", formTitle, m.taskType, strings.ToLower(string(m.priority)))
}

func (m formModel) body() string {
	bodyW := modalBodyWidth(m.width)

	var sections []string
	if answered := m.answeredLines(); len(answered) > 0 {
		sections = append(sections, strings.Join(answered, "\n"))
	}
	sections = append(sections, m.promptView(bodyW))

	if m.errLine != "" {
		sections = append(sections, styleError().Render(m.errLine))
	}
	if m.minibuffer != "" {
		sections = append(sections, styleMuted().Width(bodyW).Render(m.minibuffer))
	}
	sections = append(sections, styleMuted().Width(bodyW).Render(m.stepHelp()))
	return strings.Join(sections, "\n\n")
}

func (m formModel) promptView(bodyW int) string {
	label := lipgloss.NewStyle().Bold(true).Render(m.step.label())
	switch m.step {
	case stepDescription:
		return label + "\n" + m.textarea.View()
	case stepAssignee:
		return label + "\n" + m.staffList.View()
	case stepStatus:
		return label + "\n" + m.statusList.View()
	case stepConfirm:
		return m.confirmView(bodyW, label)
	default:
		return label + "\n" + renderInputLine(bodyW, m.input.View())
	}
}

// answeredLines echoes every completed prompt with its answer.
func (m formModel) answeredLines() []string {
	var lines []string
	add := func(label, value string) {
		lines = append(lines, styleMuted().Render(label)+" "+value)
	}

	if m.step > stepStart {
		add(stepStart.label(), m.start.String())
	}
	if m.step > stepDescription {
		add(stepDescription.label(), formatDescription(m.description))
	}
	if m.step > stepTitle {
		add(stepTitle.label(), m.title)
	}
	if m.step > stepEnd {
		add(stepEnd.label(), m.end.String())
		add("Temps de travail:", m.workTime())
	}
	if m.step > stepAssignee {
		add(stepAssignee.label(), m.assignee.String())
	}
	if m.step > stepStatus {
		add(stepStatus.label(), m.status.String())
	}
	if m.status == model.TaskStatusOngoing {
		if m.step > stepDueDate {
			add(stepDueDate.label(), timeutil.FormatDueDate(m.dueDay))
		}
		if m.step > stepDueTime {
			add(stepDueTime.label(), timeutil.ClockOf(m.due).String())
		}
	}
	return lines
}

func (m formModel) confirmView(bodyW int, label string) string {
	due := m.dueDate(m.now())
	parts := []string{
		styleMuted().Render("Échéance:") + " " + timeutil.FormatDueDate(due) + " " + timeutil.ClockOf(due).String(),
	}
	if preview := renderDescriptionPreview(m.description, bodyW); preview != "" {
		parts = append(parts, preview)
	}
	parts = append(parts, label, renderConfirmButtons("Oui", "Non", m.confirmFocus))
	return strings.Join(parts, "\n\n")
}

func (m formModel) stepHelp() string {
	k := m.keys
	switch m.step {
	case stepDescription:
		return helpLine(k.Save, k.Editor, k.Skip, k.Interrupt)
	case stepDueDate:
		return helpLine(k.Submit, k.NextDay, k.PrevDay, k.Cancel, k.Interrupt)
	case stepConfirm:
		return helpLine(k.Yes, k.No, k.Toggle, k.Submit, k.Interrupt)
	default:
		return helpLine(k.Submit, k.Cancel, k.Interrupt)
	}
}
