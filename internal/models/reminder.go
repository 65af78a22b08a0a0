package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
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

// KnownFrequency reports whether f is a supported frequency. Legacy rows may
// carry values like "yearly"; callers downgrade those to once.
func KnownFrequency(f Frequency) bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

func KnownPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func KnownStatus(s Status) bool {
	return s == StatusPending || s == StatusDone || s == StatusSnoozed
}

// CoerceFrequency downgrades unknown values to once rather than rejecting
// them. The same tolerate-and-coerce rule applies to all three enums.
func CoerceFrequency(f Frequency) Frequency {
	if KnownFrequency(f) {
		return f
	}
	return FrequencyOnce
}

func CoercePriority(p Priority) Priority {
	if KnownPriority(p) {
		return p
	}
	return PriorityMedium
}

func CoerceStatus(s Status) Status {
	if KnownStatus(s) {
		return s
	}
	return StatusPending
}

type Reminder struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	AreaID      *uuid.UUID     `gorm:"type:uuid;index" json:"areaId,omitempty"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Note        string         `gorm:"default:''" json:"note"`
	DueAt       *time.Time     `gorm:"index" json:"dueAt,omitempty"`
	HasTime     bool           `gorm:"default:false" json:"hasTime"` // false = date-only commitment (stored at local noon)
	Frequency   Frequency      `gorm:"type:varchar(20);default:'once'" json:"frequency"`
	Priority    Priority       `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Status      Status         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Area *Area `gorm:"foreignKey:AreaID" json:"-"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Reminder) IsDone() bool {
	return r.Status == StatusDone
}

// Complete marks the reminder done. CompletedAt is set together with the
// status so the two never disagree.
func (r *Reminder) Complete(now time.Time) {
	r.Status = StatusDone
	r.CompletedAt = &now
}

// Reopen returns the reminder to pending and clears CompletedAt.
func (r *Reminder) Reopen() {
	r.Status = StatusPending
	r.CompletedAt = nil
}
