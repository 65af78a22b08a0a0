package store

import "time"

// IsOverdue reports whether a reminder's due point has passed. Timed
// reminders are overdue the instant dueAt passes; date-only reminders get an
// end-of-day grace period so a task due "today" is never flagged before the
// day ends.
func IsOverdue(r Reminder, now time.Time) bool {
	if r.Status == StatusDone || r.DueAt == nil {
		return false
	}
	if r.HasTime {
		return now.After(*r.DueAt)
	}
	return now.After(endOfDay(*r.DueAt, now.Location()))
}

// FilterReminders applies the view's time window and the filters, preserving
// the source order. Reminders without a due date are excluded from the
// date-windowed views (today, upcoming) but kept in the all view.
func FilterReminders(reminders []Reminder, filters Filters, view View, now time.Time) []Reminder {
	result := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		switch view {
		case ViewToday:
			if r.DueAt == nil || !sameDay(*r.DueAt, now) {
				continue
			}
		case ViewUpcoming:
			if r.DueAt == nil || !r.DueAt.After(now) {
				continue
			}
		}

		if filters.Area != FilterAll {
			if r.AreaID == nil || *r.AreaID != filters.Area {
				continue
			}
		}
		if filters.Status != FilterAll && string(r.Status) != filters.Status {
			continue
		}
		if filters.Priority != FilterAll && string(r.Priority) != filters.Priority {
			continue
		}

		result = append(result, r)
	}
	return result
}

// Group is a run of reminders sharing an area. AreaID is nil for the
// "no area" group.
type Group struct {
	AreaID    *string
	Reminders []Reminder
}

// GroupByArea buckets reminders by area, groups ordered by first
// appearance, reminders within each group keeping their relative source
// order (newest created first, since new reminders are prepended).
func GroupByArea(reminders []Reminder) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, r := range reminders {
		key := ""
		if r.AreaID != nil {
			key = *r.AreaID
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{AreaID: r.AreaID})
		}
		groups[i].Reminders = append(groups[i].Reminders, r)
	}
	return groups
}

func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}
