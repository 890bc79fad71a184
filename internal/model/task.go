package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type TaskType int

const (
	TaskTypeCustomerCall   TaskType = 1
	TaskTypeTechnical      TaskType = 2
	TaskTypeAdministrative TaskType = 3
	TaskTypeReminder       TaskType = 4
)

var taskTypeNames = map[TaskType]string{
	TaskTypeCustomerCall:   "customer-call",
	TaskTypeTechnical:      "technical",
	TaskTypeAdministrative: "administrative",
	TaskTypeReminder:       "reminder",
}

func (t TaskType) String() string {
	if s, ok := taskTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type-%d", int(t))
}

// ParseTaskType accepts the flag spelling ("customer-call") as well as
// "customer_call"/"customercall", case-insensitively.
func ParseTaskType(s string) (TaskType, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for t, name := range taskTypeNames {
		if strings.ReplaceAll(name, "-", "") == norm {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid task type %q (expected customer-call|technical|administrative|reminder)", s)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityNormal TaskPriority = "NORMAL"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(strings.ToUpper(strings.TrimSpace(s))); p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected low|normal|high|urgent)", s)
}

type TaskStatus string

const (
	TaskStatusOngoing TaskStatus = "ONGOING"
	TaskStatusClosed  TaskStatus = "CLOSED"
)

// String returns the operator-facing label.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusOngoing:
		return "En cours"
	case TaskStatusClosed:
		return "Terminé"
	default:
		return string(s)
	}
}

// DefaultAssignedStaffID is the staff a fresh task points to before the
// operator picks an assignee.
const DefaultAssignedStaffID = 8

// Task is the record submitted to the remote API. Field tags are the wire contract.
type Task struct {
	Type            TaskType `json:"fk_type"`
	AssignedStaffID *int     `json:"fk_assigned_staff"`
	AssignedGroupID *int     `json:"fk_assigned_group"`
	CustomerID      *int     `json:"fk_customer"`
	ContractID      *int     `json:"fk_contract"`

	Title       string `json:"title"`
	Description string `json:"description"`

	DueDate       LocalDateTime `json:"due_date"`
	WorkTime      *string       `json:"work_time"`
	EstimatedTime *string       `json:"estimated_time"`

	Priority TaskPriority `json:"priority"`
	Status   TaskStatus   `json:"status"`
}

func NewTask(typ TaskType, title, description string) Task {
	return NewTaskAt(typ, title, description, time.Now())
}

// NewTaskAt is NewTask with an explicit "now" for the default due date.
func NewTaskAt(typ TaskType, title, description string, now time.Time) Task {
	staffID := DefaultAssignedStaffID
	return Task{
		Type:            typ,
		AssignedStaffID: &staffID,
		Title:           title,
		Description:     description,
		DueDate:         NewLocalDateTime(now),
		Priority:        TaskPriorityNormal,
		Status:          TaskStatusOngoing,
	}
}

func intPtr(n int) *int { return &n }

func (t Task) WithAssignedStaff(s Staff) Task {
	t.AssignedStaffID = intPtr(s.ID)
	return t
}

func (t Task) WithAssignedGroup(groupID *int) Task {
	t.AssignedGroupID = groupID
	return t
}

func (t Task) WithCustomer(c Customer) Task {
	t.CustomerID = intPtr(c.ID)
	return t
}

func (t Task) WithContract(contractID *int) Task {
	t.ContractID = contractID
	return t
}

func (t Task) WithTitle(title string) Task {
	t.Title = title
	return t
}

func (t Task) WithDescription(description string) Task {
	t.Description = description
	return t
}

func (t Task) WithDueDate(due time.Time) Task {
	t.DueDate = NewLocalDateTime(due)
	return t
}

func (t Task) WithWorkTime(workTime *string) Task {
	t.WorkTime = workTime
	return t
}

func (t Task) WithEstimatedTime(estimated *string) Task {
	t.EstimatedTime = estimated
	return t
}

func (t Task) WithPriority(p TaskPriority) Task {
	t.Priority = p
	return t
}

func (t Task) WithStatus(s TaskStatus) Task {
	t.Status = s
	return t
}

// JSON returns the wire encoding of the task.
func (t Task) JSON(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(t, "", "  ")
	}
	return json.Marshal(t)
}
