package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewTaskAt_Defaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 5, 14, 7, 9, 500, time.Local)
	task := NewTaskAt(TaskTypeCustomerCall, "Call back", "", now)

	if task.AssignedStaffID == nil || *task.AssignedStaffID != DefaultAssignedStaffID {
		t.Fatalf("expected default assigned staff %d, got %v", DefaultAssignedStaffID, task.AssignedStaffID)
	}
	if task.Priority != TaskPriorityNormal {
		t.Fatalf("expected NORMAL priority, got %q", task.Priority)
	}
	if task.Status != TaskStatusOngoing {
		t.Fatalf("expected ONGOING status, got %q", task.Status)
	}
	if !task.DueDate.Equal(now.Truncate(time.Second)) {
		t.Fatalf("expected due date %v, got %v", now.Truncate(time.Second), task.DueDate.Time)
	}
	if task.WorkTime != nil || task.EstimatedTime != nil || task.CustomerID != nil || task.ContractID != nil || task.AssignedGroupID != nil {
		t.Fatalf("expected optional references to be nil, got %+v", task)
	}
}

func TestTaskBuilder_EachRefinementTouchesOneField(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.Local)
	base := NewTaskAt(TaskTypeTechnical, "Title", "Desc", now)

	withStatus := base.WithStatus(TaskStatusClosed)
	if withStatus.Status != TaskStatusClosed {
		t.Fatalf("WithStatus: got %q", withStatus.Status)
	}
	if base.Status != TaskStatusOngoing {
		t.Fatalf("WithStatus must not mutate the receiver; base status=%q", base.Status)
	}
	withStatus.Status = base.Status
	if got, _ := json.Marshal(withStatus); string(got) != mustJSON(t, base) {
		t.Fatalf("WithStatus changed other fields:\n got: %s\nwant: %s", got, mustJSON(t, base))
	}

	wt := "01:30"
	withWork := base.WithWorkTime(&wt)
	if withWork.WorkTime == nil || *withWork.WorkTime != "01:30" {
		t.Fatalf("WithWorkTime: got %v", withWork.WorkTime)
	}

	staff := base.WithAssignedStaff(Staff{ID: 3, Name: "Bea"})
	if *staff.AssignedStaffID != 3 || *base.AssignedStaffID != DefaultAssignedStaffID {
		t.Fatalf("WithAssignedStaff: got %d (base %d)", *staff.AssignedStaffID, *base.AssignedStaffID)
	}

	cust := base.WithCustomer(Customer{ID: 42, FirstName: "Ada"})
	if cust.CustomerID == nil || *cust.CustomerID != 42 {
		t.Fatalf("WithCustomer: got %v", cust.CustomerID)
	}

	due := time.Date(2024, 4, 1, 9, 30, 0, 0, time.Local)
	if got := base.WithDueDate(due).DueDate; !got.Equal(due) {
		t.Fatalf("WithDueDate: got %v", got.Time)
	}
	if got := base.WithPriority(TaskPriorityUrgent).Priority; got != TaskPriorityUrgent {
		t.Fatalf("WithPriority: got %q", got)
	}
}

func TestTaskJSON_WireShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)
	wt := "00:45"
	task := NewTaskAt(TaskTypeCustomerCall, "Printer", "", now).
		WithAssignedStaff(Staff{ID: 2, Name: "Andreas"}).
		WithWorkTime(&wt).
		WithStatus(TaskStatusClosed)

	b, err := task.JSON(false)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"fk_type":           float64(1),
		"fk_assigned_staff": float64(2),
		"fk_assigned_group": nil,
		"fk_customer":       nil,
		"fk_contract":       nil,
		"title":             "Printer",
		"description":       "",
		"due_date":          "2024-03-05T14:07:09",
		"work_time":         "00:45",
		"estimated_time":    nil,
		"priority":          "NORMAL",
		"status":            "CLOSED",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d: %s", len(want), len(got), b)
	}
	for k, v := range want {
		gv, ok := got[k]
		if !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
		if gv != v {
			t.Fatalf("key %q: got %#v, want %#v", k, gv, v)
		}
	}
}

func TestLocalDateTime_RoundTripDropsFraction(t *testing.T) {
	t.Parallel()

	var d LocalDateTime
	if err := json.Unmarshal([]byte(`"2024-01-02T03:04:05.123456"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-02T03:04:05"` {
		t.Fatalf("got %s", b)
	}
	if err := json.Unmarshal([]byte(`"02/01/2024"`), &d); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestParseTaskTypeAndPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want TaskType
	}{
		{"customer-call", TaskTypeCustomerCall},
		{"CustomerCall", TaskTypeCustomerCall},
		{"technical", TaskTypeTechnical},
		{"ADMINISTRATIVE", TaskTypeAdministrative},
		{"reminder", TaskTypeReminder},
	}
	for _, tt := range tests {
		got, err := ParseTaskType(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseTaskType(%q)=(%v,%v), want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseTaskType("meeting"); err == nil {
		t.Fatalf("expected error for unknown type")
	}

	if p, err := ParseTaskPriority(" urgent "); err != nil || p != TaskPriorityUrgent {
		t.Fatalf("ParseTaskPriority: (%v,%v)", p, err)
	}
	if _, err := ParseTaskPriority("asap"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestStaffAndCustomerLabels(t *testing.T) {
	t.Parallel()

	if !SameStaff(Staff{ID: 1, Name: "A"}, Staff{ID: 1, Name: "renamed"}) {
		t.Fatalf("expected staff equality by id")
	}
	if SameStaff(Staff{ID: 1, Name: "A"}, Staff{ID: 2, Name: "A"}) {
		t.Fatalf("expected different ids to differ")
	}
	if got := (Customer{ID: 7, FirstName: "Ada", LastName: "Lovelace", IsProspect: true}).DisplayName(); got != "Ada Lovelace (prospect)" {
		t.Fatalf("DisplayName: got %q", got)
	}
	if got := TaskStatusClosed.String(); got != "Terminé" {
		t.Fatalf("status label: got %q", got)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
