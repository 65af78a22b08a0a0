// Package client talks to the Dayboard reminder API on behalf of the
// local store. It returns decoded-but-unvalidated payloads; turning those
// into canonical reminders is the store's job.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthorized is returned for 401 responses. Reads treat it as a
	// normal "not signed in" state, writes surface it as an auth prompt.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for remaining non-success responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// CreateReminderRequest is the body for creating a reminder.
type CreateReminderRequest struct {
	Title     string     `json:"title"`
	Note      *string    `json:"note,omitempty"`
	AreaID    *string    `json:"areaId,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	HasTime   bool       `json:"hasTime"`
	Frequency string     `json:"frequency"`
	Priority  string     `json:"priority"`
	Status    string     `json:"status,omitempty"`
}

// API is the reminder service surface the store depends on. One method per
// endpoint operation; responses are raw JSON objects.
type API interface {
	ListReminders(ctx context.Context) ([]map[string]any, error)
	CreateReminder(ctx context.Context, req CreateReminderRequest) (map[string]any, error)
	ToggleReminder(ctx context.Context, id string) (map[string]any, error)
	UpdateReminderTitle(ctx context.Context, id, title string) (map[string]any, error)
	UpdateReminderDueAt(ctx context.Context, id string, dueAt *time.Time, hasTime bool) (map[string]any, error)
	MoveReminder(ctx context.Context, id string, areaID *string) (map[string]any, error)
	DeleteReminder(ctx context.Context, id string) error
	ListAreas(ctx context.Context) ([]map[string]any, error)
	CreateArea(ctx context.Context, label string) (map[string]any, error)
}
