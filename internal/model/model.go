package model

import (
	"fmt"
	"strings"
	"time"
)

// Staff is an assignable member of the configured roster.
type Staff struct {
	ID   int    `json:"id" mapstructure:"id" toml:"id"`
	Name string `json:"name" mapstructure:"name" toml:"name"`
}

func (s Staff) String() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return fmt.Sprintf("staff #%d", s.ID)
}

// SameStaff compares by id. Roster positions are operator-edited and not stable.
func SameStaff(a, b Staff) bool {
	return a.ID == b.ID
}

type Customer struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsProspect bool   `json:"is_prospect"`
}

func (c Customer) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		name = fmt.Sprintf("customer #%d", c.ID)
	}
	if c.IsProspect {
		return name + " (prospect)"
	}
	return name
}

// LocalDateTimeLayout is the wire layout for timestamps: local wall-clock time,
// no zone, second precision.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a timestamp serialized without zone information.
type LocalDateTime struct {
	time.Time
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t.Truncate(time.Second)}
}

func (d LocalDateTime) String() string {
	return d.Time.Format(LocalDateTimeLayout)
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(LocalDateTimeLayout) + `"`), nil
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Fractional seconds are accepted on input but never written.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid local datetime %q (expected YYYY-MM-DDTHH:MM:SS)", s)
	}
	d.Time = t
	return nil
}
