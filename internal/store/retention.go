package store

import "time"

// ApplyRetention drops completed reminders older than the cutoff from the
// visible collection. A nil cutoff is the identity. This is a display-layer
// filter over already-fetched data, not a deletion: raising the cutoff back
// restores aged-out reminders on the next load.
//
// Order-preserving; the input slice is never mutated.
func ApplyRetention(reminders []Reminder, cutoffDays *int, now time.Time) []Reminder {
	if cutoffDays == nil {
		return reminders
	}

	cutoff := time.Duration(*cutoffDays) * 24 * time.Hour
	kept := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Status != StatusDone || r.CompletedAt == nil {
			kept = append(kept, r)
			continue
		}
		if now.Sub(*r.CompletedAt) <= cutoff {
			kept = append(kept, r)
		}
	}
	return kept
}
