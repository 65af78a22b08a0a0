// Package store holds the client-side reminder state engine: it normalizes
// server payloads into canonical reminders, applies the completed-item
// retention policy, performs optimistic mutations reconciled against the
// server, and computes the derived views the UI renders.
package store

import (
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusSnoozed Status = "snoozed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// Reminder is the canonical client-side shape every server payload is
// normalized into before it reaches store state.
type Reminder struct {
	ID          string
	Title       string
	Note        string
	AreaID      *string
	DueAt       *time.Time
	HasTime     bool
	Frequency   Frequency
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Area is a user-defined category grouping reminders.
type Area struct {
	ID    string
	Label string
}

// ReminderInput is the user-supplied input for creating a reminder.
type ReminderInput struct {
	Title     string
	Note      string
	AreaID    *string
	DueAt     *time.Time
	HasTime   bool
	Frequency Frequency
	Priority  Priority
	Status    Status // defaults to pending when empty
}

// Settings holds the retention configuration. A nil cutoff retains
// completed reminders indefinitely.
type Settings struct {
	AutoDeleteCompletedAfterDays *int
}

// View selects the time window applied on top of the filters.
type View string

const (
	ViewToday    View = "today"
	ViewUpcoming View = "upcoming"
	ViewAll      View = "all"
)

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Filters narrow the visible reminders. Each field is FilterAll or a
// concrete area id / status / priority.
type Filters struct {
	Area     string
	Status   string
	Priority string
}

// DateOnlyDueAt pins a date-only commitment to local noon, keeping the
// stored instant inside the intended calendar day across timezone shifts.
func DateOnlyDueAt(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}
