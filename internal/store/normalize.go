package store

import (
	"fmt"
	"math"
	"time"
)

// NormalizeReminder converts a raw server payload into the canonical
// Reminder shape. It is pure: the only failure modes are a payload that is
// not an object with an id, or an instant that cannot be parsed. Unknown
// enum values are not errors; they downgrade to the safe defaults (once,
// medium, pending) so legacy rows such as frequency "yearly" stay loadable.
func NormalizeReminder(raw map[string]any) (Reminder, error) {
	if raw == nil {
		return Reminder{}, fmt.Errorf("reminder payload is not an object")
	}
	id, ok := coerceString(raw["id"])
	if !ok || id == "" {
		return Reminder{}, fmt.Errorf("reminder payload missing id")
	}

	title, _ := coerceString(raw["title"])
	note, _ := coerceString(raw["note"])

	var areaID *string
	if v, ok := coerceString(raw["areaId"]); ok {
		areaID = &v
	}

	dueAt, err := coerceInstant(raw["dueAt"])
	if err != nil {
		return Reminder{}, fmt.Errorf("reminder %s: invalid dueAt: %w", id, err)
	}
	createdAtPtr, err := coerceInstant(raw["createdAt"])
	if err != nil {
		return Reminder{}, fmt.Errorf("reminder %s: invalid createdAt: %w", id, err)
	}
	var createdAt time.Time
	if createdAtPtr != nil {
		createdAt = *createdAtPtr
	}
	completedAt, err := coerceInstant(raw["completedAt"])
	if err != nil {
		return Reminder{}, fmt.Errorf("reminder %s: invalid completedAt: %w", id, err)
	}

	hasTime, _ := raw["hasTime"].(bool)

	return Reminder{
		ID:          id,
		Title:       title,
		Note:        note,
		AreaID:      areaID,
		DueAt:       dueAt,
		HasTime:     hasTime,
		Frequency:   normalizeFrequency(raw["frequency"]),
		Priority:    normalizePriority(raw["priority"]),
		Status:      normalizeStatus(raw["status"]),
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
	}, nil
}

// NormalizeArea converts a raw area payload into an Area.
func NormalizeArea(raw map[string]any) (Area, error) {
	if raw == nil {
		return Area{}, fmt.Errorf("area payload is not an object")
	}
	id, ok := coerceString(raw["id"])
	if !ok || id == "" {
		return Area{}, fmt.Errorf("area payload missing id")
	}
	label, _ := coerceString(raw["label"])
	return Area{ID: id, Label: label}, nil
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		// ids occasionally arrive as JSON numbers
		if s == math.Trunc(s) {
			return fmt.Sprintf("%d", int64(s)), true
		}
		return fmt.Sprintf("%v", s), true
	default:
		return "", false
	}
}

// coerceInstant accepts an ISO-8601 string or an epoch-milliseconds number.
// Absent and null both normalize to nil.
func coerceInstant(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed, nil
			}
		}
		return nil, fmt.Errorf("unparsable instant %q", t)
	case float64:
		parsed := time.UnixMilli(int64(t)).UTC()
		return &parsed, nil
	default:
		return nil, fmt.Errorf("unsupported instant type %T", v)
	}
}

func normalizeFrequency(v any) Frequency {
	s, _ := coerceString(v)
	switch f := Frequency(s); f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return f
	}
	return FrequencyOnce
}

func normalizePriority(v any) Priority {
	s, _ := coerceString(v)
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	}
	return PriorityMedium
}

func normalizeStatus(v any) Status {
	s, _ := coerceString(v)
	switch st := Status(s); st {
	case StatusPending, StatusDone, StatusSnoozed:
		return st
	}
	return StatusPending
}
