package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/dayboard/backend/internal/models"
)

// CreateReminderRequest is the request body for creating a reminder
type CreateReminderRequest struct {
	Title     string     `json:"title" binding:"required,max=500"`
	Note      *string    `json:"note,omitempty"`
	AreaID    *uuid.UUID `json:"areaId,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	HasTime   bool       `json:"hasTime"`
	Frequency string     `json:"frequency" binding:"required"`
	Priority  string     `json:"priority" binding:"required"`
	Status    *string    `json:"status,omitempty"`
}

// UpdateReminderRequest carries a partial reminder update. The Set* flags
// record which keys were present in the body, since a plain pointer cannot
// tell an absent dueAt/areaId apart from an explicit null.
type UpdateReminderRequest struct {
	Title   *string
	DueAt   *time.Time
	HasTime bool
	AreaID  *uuid.UUID

	SetTitle bool
	SetDue   bool
	SetArea  bool
}

// IsToggle reports whether the patch carried no recognized fields, which the
// API treats as a status toggle.
func (r *UpdateReminderRequest) IsToggle() bool {
	return !r.SetTitle && !r.SetDue && !r.SetArea
}

// ParseUpdateReminderRequest decodes a PATCH body. An empty body (or empty
// object) is a valid toggle request; a body with only unrecognized fields
// is rejected.
func ParseUpdateReminderRequest(body []byte) (*UpdateReminderRequest, error) {
	req := &UpdateReminderRequest{}
	if len(body) == 0 {
		return req, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if raw, ok := fields["title"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			return nil, fmt.Errorf("invalid title: %w", err)
		}
		req.Title = &title
		req.SetTitle = true
	}

	if raw, ok := fields["dueAt"]; ok {
		req.SetDue = true
		if string(raw) != "null" {
			var dueAt time.Time
			if err := json.Unmarshal(raw, &dueAt); err != nil {
				return nil, fmt.Errorf("invalid dueAt: %w", err)
			}
			req.DueAt = &dueAt
		}
		if raw, ok := fields["hasTime"]; ok {
			if err := json.Unmarshal(raw, &req.HasTime); err != nil {
				return nil, fmt.Errorf("invalid hasTime: %w", err)
			}
		}
	}

	if raw, ok := fields["areaId"]; ok {
		req.SetArea = true
		if string(raw) != "null" {
			var areaID uuid.UUID
			if err := json.Unmarshal(raw, &areaID); err != nil {
				return nil, fmt.Errorf("invalid areaId: %w", err)
			}
			req.AreaID = &areaID
		}
	}

	// Only an empty body means toggle. A body carrying nothing we
	// recognize is a client bug, not a toggle request.
	if len(fields) > 0 && req.IsToggle() {
		return nil, fmt.Errorf("no recognized fields in request body")
	}

	return req, nil
}

// ReminderDTO represents a reminder in responses
type ReminderDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Note        string     `json:"note"`
	AreaID      *uuid.UUID `json:"areaId"`
	AreaLabel   *string    `json:"areaLabel"`
	DueAt       *time.Time `json:"dueAt"`
	HasTime     bool       `json:"hasTime"`
	Frequency   string     `json:"frequency"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ReminderListResponse is the response for listing reminders
type ReminderListResponse struct {
	Reminders []ReminderDTO `json:"reminders"`
}

// ReminderResponse wraps a single reminder
type ReminderResponse struct {
	Reminder ReminderDTO `json:"reminder"`
}

// ReminderToDTO converts a Reminder model to ReminderDTO
func ReminderToDTO(r *models.Reminder) ReminderDTO {
	var areaLabel *string
	if r.Area != nil {
		areaLabel = &r.Area.Name
	}
	return ReminderDTO{
		ID:          r.ID,
		Title:       r.Title,
		Note:        r.Note,
		AreaID:      r.AreaID,
		AreaLabel:   areaLabel,
		DueAt:       r.DueAt,
		HasTime:     r.HasTime,
		Frequency:   string(r.Frequency),
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

// RemindersToDTO converts a slice of Reminder models to DTOs
func RemindersToDTO(reminders []models.Reminder) []ReminderDTO {
	dtos := make([]ReminderDTO, len(reminders))
	for i, r := range reminders {
		dtos[i] = ReminderToDTO(&r)
	}
	return dtos
}
