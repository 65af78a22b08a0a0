package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/user/dayboard/backend/internal/client"
)

var (
	// ErrEmptyTitle rejects creates and title edits whose trimmed title is
	// empty. No state changes and nothing is sent.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrEmptyLabel rejects area creation with an empty trimmed label.
	ErrEmptyLabel = errors.New("label must not be empty")
)

// UnknownAreaLabel is the display label for an area id the local areas
// collection cannot resolve yet, e.g. a server-created default area before
// the next area refresh.
const UnknownAreaLabel = "Unknown"

// mutationKind tags an in-flight optimistic mutation so a failure can be
// reconciled the right way: server-computed mutations refetch the
// authoritative list, a pure local removal restores its snapshot.
type mutationKind int

const (
	mutationToggle mutationKind = iota
	mutationTitle
	mutationDue
	mutationMove
	mutationDelete
)

// Store owns the client-side reminder state: the reminders and areas
// collections, the retention settings, and the view/filter selectors. All
// mutation goes through its methods; optimistic changes are reconciled
// against the server response ("server wins") or rolled back on failure.
//
// Rapid repeated mutations to the same reminder are not serialized: the
// last-resolved response wins. Acceptable for a single-user tool.
type Store struct {
	api client.API
	now func() time.Time

	mu           sync.Mutex
	reminders    []Reminder
	areas        []Area
	settings     Settings
	filters      Filters
	view         View
	authRequired bool
}

// New creates a store talking to api, with the default view (today), the
// default filters (pending only), and a seven-day retention cutoff.
func New(api client.API) *Store {
	defaultCutoff := 7
	return &Store{
		api: api,
		now: time.Now,
		settings: Settings{
			AutoDeleteCompletedAfterDays: &defaultCutoff,
		},
		filters: Filters{
			Area:     FilterAll,
			Status:   string(StatusPending),
			Priority: FilterAll,
		},
		view: ViewToday,
	}
}

// Reminders returns a copy of the visible reminder collection.
func (s *Store) Reminders() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reminder(nil), s.reminders...)
}

// Areas returns a copy of the known areas.
func (s *Store) Areas() []Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Area(nil), s.areas...)
}

func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// AuthRequired reports whether a write was rejected as unauthenticated
// since the last successful operation. The UI reflects it as a sign-in
// prompt.
func (s *Store) AuthRequired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authRequired
}

// AreaLabel resolves an area id to its display label, falling back to
// UnknownAreaLabel until the next area refresh catches up.
func (s *Store) AreaLabel(areaID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.areas {
		if a.ID == areaID {
			return a.Label
		}
	}
	return UnknownAreaLabel
}

// LoadReminders fetches the authoritative reminder list. A 401 is a normal
// "not signed in" state: the collection empties and no error is returned.
// Any other failure leaves current state untouched.
func (s *Store) LoadReminders(ctx context.Context) error {
	raws, err := s.api.ListReminders(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		s.mu.Lock()
		s.reminders = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		log.Printf("Failed to fetch reminders: %v", err)
		return err
	}

	normalized, err := normalizeAll(raws)
	if err != nil {
		log.Printf("Malformed reminders payload: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = ApplyRetention(normalized, s.settings.AutoDeleteCompletedAfterDays, s.now())
	s.authRequired = false
	return nil
}

// LoadAreas fetches the user's areas. Same soft-401 contract as
// LoadReminders.
func (s *Store) LoadAreas(ctx context.Context) error {
	raws, err := s.api.ListAreas(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		s.mu.Lock()
		s.areas = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		log.Printf("Failed to fetch areas: %v", err)
		return err
	}

	areas := make([]Area, 0, len(raws))
	for _, raw := range raws {
		area, err := NormalizeArea(raw)
		if err != nil {
			log.Printf("Malformed areas payload: %v", err)
			return err
		}
		areas = append(areas, area)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = areas
	return nil
}

// AddReminder creates a reminder. Not optimistic: the id is
// server-assigned, so nothing exists locally until the server confirms.
// A 401 sets the authRequired flag and is returned as
// client.ErrUnauthorized. The created reminder may reference an area the
// local collection has not seen yet (the server resolves a default
// "general" area); AreaLabel covers the gap until the next LoadAreas.
func (s *Store) AddReminder(ctx context.Context, input ReminderInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrEmptyTitle
	}

	status := input.Status
	if status == "" {
		status = StatusPending
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = FrequencyOnce
	}
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	req := client.CreateReminderRequest{
		Title:     title,
		AreaID:    input.AreaID,
		DueAt:     input.DueAt,
		HasTime:   input.HasTime,
		Frequency: string(frequency),
		Priority:  string(priority),
		Status:    string(status),
	}
	if input.Note != "" {
		note := input.Note
		req.Note = &note
	}

	raw, err := s.api.CreateReminder(ctx, req)
	if errors.Is(err, client.ErrUnauthorized) {
		s.mu.Lock()
		s.authRequired = true
		s.mu.Unlock()
		return err
	}
	if err != nil {
		log.Printf("Failed to create reminder: %v", err)
		return err
	}

	created, err := NormalizeReminder(raw)
	if err != nil {
		log.Printf("Malformed create response: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = ApplyRetention(
		append([]Reminder{created}, s.reminders...),
		s.settings.AutoDeleteCompletedAfterDays,
		s.now(),
	)
	return nil
}

// ToggleReminderStatus optimistically flips a reminder between pending and
// done, keeping CompletedAt coupled to the status, then asks the server for
// the real answer. The server computes the next status independently, so on
// failure the whole list is refetched rather than guessing an inverse.
//
// Retention is re-applied immediately: with a very small cutoff, marking a
// reminder done can make it vanish on the spot.
func (s *Store) ToggleReminderStatus(ctx context.Context, id string) error {
	now := s.now()
	s.mu.Lock()
	for i, r := range s.reminders {
		if r.ID != id {
			continue
		}
		if r.Status == StatusDone {
			r.Status = StatusPending
			r.CompletedAt = nil
		} else {
			r.Status = StatusDone
			completed := now
			r.CompletedAt = &completed
		}
		s.reminders[i] = r
		break
	}
	s.reminders = ApplyRetention(s.reminders, s.settings.AutoDeleteCompletedAfterDays, now)
	s.mu.Unlock()

	raw, err := s.api.ToggleReminder(ctx, id)
	if err != nil {
		return s.recoverMutation(ctx, mutationToggle, nil, err)
	}
	return s.mergeServerReminder(id, raw)
}

// UpdateReminderTitle optimistically renames a reminder. An empty trimmed
// title is rejected with no state change.
func (s *Store) UpdateReminderTitle(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	for i, r := range s.reminders {
		if r.ID == id {
			r.Title = title
			s.reminders[i] = r
			break
		}
	}
	s.mu.Unlock()

	raw, err := s.api.UpdateReminderTitle(ctx, id, title)
	if err != nil {
		return s.recoverMutation(ctx, mutationTitle, nil, err)
	}
	return s.mergeServerReminder(id, raw)
}

// UpdateReminderDueAt optimistically sets dueAt and hasTime together; the
// pair only makes sense atomically. A nil dueAt clears the schedule.
func (s *Store) UpdateReminderDueAt(ctx context.Context, id string, dueAt *time.Time, hasTime bool) error {
	if dueAt == nil {
		hasTime = false
	}

	s.mu.Lock()
	for i, r := range s.reminders {
		if r.ID == id {
			r.DueAt = dueAt
			r.HasTime = hasTime
			s.reminders[i] = r
			break
		}
	}
	s.mu.Unlock()

	raw, err := s.api.UpdateReminderDueAt(ctx, id, dueAt, hasTime)
	if err != nil {
		return s.recoverMutation(ctx, mutationDue, nil, err)
	}
	return s.mergeServerReminder(id, raw)
}

// MoveReminder optimistically reassigns a reminder's area. The server
// validates ownership of the target area; a rejection reconciles back to
// the authoritative state rather than keeping the optimistic guess.
func (s *Store) MoveReminder(ctx context.Context, id string, areaID *string) error {
	s.mu.Lock()
	for i, r := range s.reminders {
		if r.ID == id {
			r.AreaID = areaID
			s.reminders[i] = r
			break
		}
	}
	s.mu.Unlock()

	raw, err := s.api.MoveReminder(ctx, id, areaID)
	if err != nil {
		return s.recoverMutation(ctx, mutationMove, nil, err)
	}
	return s.mergeServerReminder(id, raw)
}

// DeleteReminder optimistically removes a reminder. Removal has no
// server-side ambiguity, so failure restores the exact pre-delete snapshot,
// ordering included.
func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	snapshot := append([]Reminder(nil), s.reminders...)
	kept := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
	s.mu.Unlock()

	if err := s.api.DeleteReminder(ctx, id); err != nil {
		log.Printf("Failed to delete reminder %s: %v", id, err)
		return s.recoverMutation(ctx, mutationDelete, snapshot, err)
	}
	return nil
}

// AddArea creates (or reuses) an area by label and returns its id. Not
// optimistic: the id is server-assigned. Same 401 contract as AddReminder:
// flag set, client.ErrUnauthorized returned.
func (s *Store) AddArea(ctx context.Context, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrEmptyLabel
	}

	raw, err := s.api.CreateArea(ctx, label)
	if errors.Is(err, client.ErrUnauthorized) {
		s.mu.Lock()
		s.authRequired = true
		s.mu.Unlock()
		return "", err
	}
	if err != nil {
		log.Printf("Failed to create area: %v", err)
		return "", err
	}

	area, err := NormalizeArea(raw)
	if err != nil {
		log.Printf("Malformed area response: %v", err)
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = append(s.areas, area)
	return area.ID, nil
}

// SetSettings applies a pure transform to the retention settings and
// immediately re-filters the current collection with the new cutoff. The
// effect is retroactive and local: no network round-trip, and reminders
// hidden by a stricter cutoff reappear on the next load if it is relaxed.
func (s *Store) SetSettings(updater func(Settings) Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = updater(s.settings)
	s.reminders = ApplyRetention(s.reminders, s.settings.AutoDeleteCompletedAfterDays, s.now())
}

// SetView switches the time-window selector.
func (s *Store) SetView(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// SetFilters applies a pure transform to the filters.
func (s *Store) SetFilters(updater func(Filters) Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = updater(s.filters)
}

// SetAreaFilter narrows the area filter, leaving the others untouched.
func (s *Store) SetAreaFilter(area string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Area = area
}

// VisibleGroups computes the derived view for display: the current
// collection windowed by the view, narrowed by the filters, grouped by
// area.
func (s *Store) VisibleGroups() []Group {
	s.mu.Lock()
	reminders := append([]Reminder(nil), s.reminders...)
	filters := s.filters
	view := s.view
	s.mu.Unlock()
	return GroupByArea(FilterReminders(reminders, filters, view, s.now()))
}

// mergeServerReminder replaces the locally guessed entity with the server's
// normalized version. The server response wins over the optimistic state.
func (s *Store) mergeServerReminder(id string, raw map[string]any) error {
	updated, err := NormalizeReminder(raw)
	if err != nil {
		log.Printf("Malformed reminder response: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders[i] = updated
			break
		}
	}
	s.reminders = ApplyRetention(s.reminders, s.settings.AutoDeleteCompletedAfterDays, s.now())
	return nil
}

// recoverMutation closes the optimistic window after a failed server call.
// Delete restores its snapshot exactly; every other mutation refetches the
// authoritative list, because its server-side effect is computed remotely
// and a local inverse could disagree.
func (s *Store) recoverMutation(ctx context.Context, kind mutationKind, snapshot []Reminder, cause error) error {
	if errors.Is(cause, client.ErrUnauthorized) {
		s.mu.Lock()
		s.authRequired = true
		s.mu.Unlock()
	}

	if kind == mutationDelete {
		s.mu.Lock()
		s.reminders = snapshot
		s.mu.Unlock()
		return cause
	}

	if err := s.LoadReminders(ctx); err != nil {
		log.Printf("Reconciliation refetch failed: %v", err)
	}
	return cause
}

func normalizeAll(raws []map[string]any) ([]Reminder, error) {
	reminders := make([]Reminder, 0, len(raws))
	for _, raw := range raws {
		r, err := NormalizeReminder(raw)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}
