package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/dayboard/backend/internal/client"
)

// fakeAPI implements client.API with overridable function fields. Methods
// without an override fail the test if called.
type fakeAPI struct {
	t *testing.T

	listReminders func(ctx context.Context) ([]map[string]any, error)
	create        func(ctx context.Context, req client.CreateReminderRequest) (map[string]any, error)
	toggle        func(ctx context.Context, id string) (map[string]any, error)
	updateTitle   func(ctx context.Context, id, title string) (map[string]any, error)
	updateDueAt   func(ctx context.Context, id string, dueAt *time.Time, hasTime bool) (map[string]any, error)
	move          func(ctx context.Context, id string, areaID *string) (map[string]any, error)
	delete        func(ctx context.Context, id string) error
	listAreas     func(ctx context.Context) ([]map[string]any, error)
	createArea    func(ctx context.Context, label string) (map[string]any, error)
}

var _ client.API = (*fakeAPI)(nil)

func (f *fakeAPI) ListReminders(ctx context.Context) ([]map[string]any, error) {
	if f.listReminders == nil {
		f.t.Fatal("unexpected ListReminders call")
	}
	return f.listReminders(ctx)
}

func (f *fakeAPI) CreateReminder(ctx context.Context, req client.CreateReminderRequest) (map[string]any, error) {
	if f.create == nil {
		f.t.Fatal("unexpected CreateReminder call")
	}
	return f.create(ctx, req)
}

func (f *fakeAPI) ToggleReminder(ctx context.Context, id string) (map[string]any, error) {
	if f.toggle == nil {
		f.t.Fatal("unexpected ToggleReminder call")
	}
	return f.toggle(ctx, id)
}

func (f *fakeAPI) UpdateReminderTitle(ctx context.Context, id, title string) (map[string]any, error) {
	if f.updateTitle == nil {
		f.t.Fatal("unexpected UpdateReminderTitle call")
	}
	return f.updateTitle(ctx, id, title)
}

func (f *fakeAPI) UpdateReminderDueAt(ctx context.Context, id string, dueAt *time.Time, hasTime bool) (map[string]any, error) {
	if f.updateDueAt == nil {
		f.t.Fatal("unexpected UpdateReminderDueAt call")
	}
	return f.updateDueAt(ctx, id, dueAt, hasTime)
}

func (f *fakeAPI) MoveReminder(ctx context.Context, id string, areaID *string) (map[string]any, error) {
	if f.move == nil {
		f.t.Fatal("unexpected MoveReminder call")
	}
	return f.move(ctx, id, areaID)
}

func (f *fakeAPI) DeleteReminder(ctx context.Context, id string) error {
	if f.delete == nil {
		f.t.Fatal("unexpected DeleteReminder call")
	}
	return f.delete(ctx, id)
}

func (f *fakeAPI) ListAreas(ctx context.Context) ([]map[string]any, error) {
	if f.listAreas == nil {
		f.t.Fatal("unexpected ListAreas call")
	}
	return f.listAreas(ctx)
}

func (f *fakeAPI) CreateArea(ctx context.Context, label string) (map[string]any, error) {
	if f.createArea == nil {
		f.t.Fatal("unexpected CreateArea call")
	}
	return f.createArea(ctx, label)
}

func newTestStore(t *testing.T, api *fakeAPI, now time.Time) *Store {
	t.Helper()
	api.t = t
	s := New(api)
	s.now = func() time.Time { return now }
	return s
}

func rawReminder(id, title, status string) map[string]any {
	return map[string]any{
		"id":        id,
		"title":     title,
		"status":    status,
		"frequency": "once",
		"priority":  "medium",
	}
}

func testNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func reminderIDs(rs []Reminder) []string {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestNew_Defaults(t *testing.T) {
	s := New(&fakeAPI{})

	settings := s.Settings()
	require.NotNil(t, settings.AutoDeleteCompletedAfterDays)
	assert.Equal(t, 7, *settings.AutoDeleteCompletedAfterDays)

	assert.Equal(t, ViewToday, s.View())
	assert.Equal(t, Filters{Area: FilterAll, Status: string(StatusPending), Priority: FilterAll}, s.Filters())
	assert.False(t, s.AuthRequired())
	assert.Empty(t, s.Reminders())
}

func TestLoadReminders_NormalizesAndAppliesRetention(t *testing.T) {
	now := testNow()
	aged := now.Add(-10 * 24 * time.Hour)
	api := &fakeAPI{
		listReminders: func(context.Context) ([]map[string]any, error) {
			return []map[string]any{
				rawReminder("r1", "Call dentist", "pending"),
				{
					"id":          "r2",
					"title":       "Old chore",
					"status":      "done",
					"completedAt": aged.Format(time.RFC3339),
				},
			}, nil
		},
	}
	s := newTestStore(t, api, now)

	require.NoError(t, s.LoadReminders(context.Background()))

	reminders := s.Reminders()
	require.Len(t, reminders, 1)
	assert.Equal(t, "r1", reminders[0].ID)
}

func TestLoadReminders_UnauthorizedEmptiesQuietly(t *testing.T) {
	api := &fakeAPI{
		listReminders: func(context.Context) ([]map[string]any, error) {
			return nil, client.ErrUnauthorized
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "stale"}}

	require.NoError(t, s.LoadReminders(context.Background()))
	assert.Empty(t, s.Reminders())
	assert.False(t, s.AuthRequired())
}

func TestLoadReminders_FailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAPI{
		listReminders: func(context.Context) ([]map[string]any, error) {
			return nil, errors.New("boom")
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "kept"}}

	require.Error(t, s.LoadReminders(context.Background()))
	assert.Equal(t, []string{"kept"}, reminderIDs(s.Reminders()))
}

func TestLoadReminders_MalformedPayloadIsAnError(t *testing.T) {
	api := &fakeAPI{
		listReminders: func(context.Context) ([]map[string]any, error) {
			return []map[string]any{{"title": "no id"}}, nil
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "kept"}}

	// A malformed payload must never be mistaken for an empty list.
	require.Error(t, s.LoadReminders(context.Background()))
	assert.Equal(t, []string{"kept"}, reminderIDs(s.Reminders()))
}

func TestLoadAreas(t *testing.T) {
	api := &fakeAPI{
		listAreas: func(context.Context) ([]map[string]any, error) {
			return []map[string]any{
				{"id": "a1", "label": "health"},
				{"id": "a2", "label": "money"},
			}, nil
		},
	}
	s := newTestStore(t, api, testNow())

	require.NoError(t, s.LoadAreas(context.Background()))
	assert.Equal(t, []Area{{ID: "a1", Label: "health"}, {ID: "a2", Label: "money"}}, s.Areas())
	assert.Equal(t, "money", s.AreaLabel("a2"))
	assert.Equal(t, UnknownAreaLabel, s.AreaLabel("missing"))
}

func TestAddReminder_PrependsServerEntity(t *testing.T) {
	var got client.CreateReminderRequest
	api := &fakeAPI{
		create: func(_ context.Context, req client.CreateReminderRequest) (map[string]any, error) {
			got = req
			return rawReminder("new", req.Title, "pending"), nil
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "old", Status: StatusPending}}

	require.NoError(t, s.AddReminder(context.Background(), ReminderInput{Title: "  Buy milk  "}))

	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "once", got.Frequency)
	assert.Equal(t, "medium", got.Priority)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, []string{"new", "old"}, reminderIDs(s.Reminders()))
}

func TestAddReminder_EmptyTitleRejectedLocally(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, testNow())

	err := s.AddReminder(context.Background(), ReminderInput{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, s.Reminders())
}

func TestAddReminder_UnauthorizedSetsFlag(t *testing.T) {
	api := &fakeAPI{
		create: func(context.Context, client.CreateReminderRequest) (map[string]any, error) {
			return nil, client.ErrUnauthorized
		},
	}
	s := newTestStore(t, api, testNow())

	// Same contract as AddArea: the flag drives the sign-in prompt and the
	// caller still sees the sentinel.
	err := s.AddReminder(context.Background(), ReminderInput{Title: "x"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, s.AuthRequired())
	assert.Empty(t, s.Reminders())
}

func TestToggle_OptimisticThenServerWins(t *testing.T) {
	now := testNow()
	serverCompleted := now.Add(2 * time.Second)
	var sawOptimistic bool
	api := &fakeAPI{}
	s := newTestStore(t, api, now)
	s.reminders = []Reminder{{ID: "r1", Title: "Stretch", Status: StatusPending}}

	api.toggle = func(_ context.Context, id string) (map[string]any, error) {
		// The optimistic flip is already visible while the call is in
		// flight.
		r := s.Reminders()[0]
		sawOptimistic = r.Status == StatusDone && r.CompletedAt != nil
		return map[string]any{
			"id":          id,
			"title":       "Stretch",
			"status":      "done",
			"completedAt": serverCompleted.Format(time.RFC3339),
		}, nil
	}

	require.NoError(t, s.ToggleReminderStatus(context.Background(), "r1"))
	assert.True(t, sawOptimistic)

	r := s.Reminders()[0]
	assert.Equal(t, StatusDone, r.Status)
	require.NotNil(t, r.CompletedAt)
	assert.True(t, serverCompleted.Equal(*r.CompletedAt))
}

func TestToggle_ReopenClearsCompletedAt(t *testing.T) {
	now := testNow()
	completed := now.Add(-time.Hour)
	api := &fakeAPI{
		toggle: func(_ context.Context, id string) (map[string]any, error) {
			return rawReminder(id, "Stretch", "pending"), nil
		},
	}
	s := newTestStore(t, api, now)
	s.reminders = []Reminder{{ID: "r1", Title: "Stretch", Status: StatusDone, CompletedAt: &completed}}

	require.NoError(t, s.ToggleReminderStatus(context.Background(), "r1"))

	r := s.Reminders()[0]
	assert.Equal(t, StatusPending, r.Status)
	assert.Nil(t, r.CompletedAt)
}

func TestToggle_FailureRefetchesAuthoritativeList(t *testing.T) {
	api := &fakeAPI{
		toggle: func(context.Context, string) (map[string]any, error) {
			return nil, errors.New("boom")
		},
		listReminders: func(context.Context) ([]map[string]any, error) {
			return []map[string]any{rawReminder("r1", "Stretch", "pending")}, nil
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "r1", Title: "Stretch", Status: StatusPending}}

	err := s.ToggleReminderStatus(context.Background(), "r1")
	require.Error(t, err)

	// The optimistic "done" is gone; the server's answer stands.
	r := s.Reminders()[0]
	assert.Equal(t, StatusPending, r.Status)
	assert.Nil(t, r.CompletedAt)
}

func TestToggle_TinyCutoffRemovesImmediately(t *testing.T) {
	now := testNow()
	api := &fakeAPI{
		toggle: func(_ context.Context, id string) (map[string]any, error) {
			return map[string]any{
				"id":          id,
				"status":      "done",
				"completedAt": now.Add(-time.Hour).Format(time.RFC3339),
			}, nil
		},
	}
	s := newTestStore(t, api, now)
	s.reminders = []Reminder{{ID: "r1", Status: StatusPending}}
	s.SetSettings(func(cur Settings) Settings {
		zero := 0
		cur.AutoDeleteCompletedAfterDays = &zero
		return cur
	})

	require.NoError(t, s.ToggleReminderStatus(context.Background(), "r1"))
	assert.Empty(t, s.Reminders())
}

func TestUpdateTitle_EmptyRejected(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, testNow())
	s.reminders = []Reminder{{ID: "r1", Title: "Original"}}

	err := s.UpdateReminderTitle(context.Background(), "r1", "  ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Equal(t, "Original", s.Reminders()[0].Title)
}

func TestUpdateTitle_ServerResponseMerged(t *testing.T) {
	api := &fakeAPI{
		updateTitle: func(_ context.Context, id, title string) (map[string]any, error) {
			return rawReminder(id, title, "pending"), nil
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "r1", Title: "Original", Status: StatusPending}}

	require.NoError(t, s.UpdateReminderTitle(context.Background(), "r1", " Renamed "))
	assert.Equal(t, "Renamed", s.Reminders()[0].Title)
}

func TestUpdateDueAt_ClearingDisablesHasTime(t *testing.T) {
	var gotDue *time.Time
	var gotHasTime bool
	api := &fakeAPI{
		updateDueAt: func(_ context.Context, id string, dueAt *time.Time, hasTime bool) (map[string]any, error) {
			gotDue, gotHasTime = dueAt, hasTime
			return rawReminder(id, "x", "pending"), nil
		},
	}
	s := newTestStore(t, api, testNow())
	due := testNow().Add(time.Hour)
	s.reminders = []Reminder{{ID: "r1", Title: "x", Status: StatusPending, DueAt: &due, HasTime: true}}

	require.NoError(t, s.UpdateReminderDueAt(context.Background(), "r1", nil, true))

	assert.Nil(t, gotDue)
	assert.False(t, gotHasTime)
	r := s.Reminders()[0]
	assert.Nil(t, r.DueAt)
	assert.False(t, r.HasTime)
}

func TestMoveReminder_RejectionReconciles(t *testing.T) {
	api := &fakeAPI{
		move: func(context.Context, string, *string) (map[string]any, error) {
			return nil, &client.StatusError{StatusCode: 400, Body: "Invalid area"}
		},
		listReminders: func(context.Context) ([]map[string]any, error) {
			r := rawReminder("r1", "x", "pending")
			r["areaId"] = "a1"
			return []map[string]any{r}, nil
		},
	}
	s := newTestStore(t, api, testNow())
	a1 := "a1"
	s.reminders = []Reminder{{ID: "r1", Title: "x", Status: StatusPending, AreaID: &a1}}

	target := "not-mine"
	require.Error(t, s.MoveReminder(context.Background(), "r1", &target))

	r := s.Reminders()[0]
	require.NotNil(t, r.AreaID)
	assert.Equal(t, "a1", *r.AreaID)
}

func TestDeleteReminder_OptimisticAndConfirmed(t *testing.T) {
	var sawRemoved bool
	api := &fakeAPI{}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "r1"}, {ID: "r2"}}

	api.delete = func(_ context.Context, id string) error {
		sawRemoved = len(s.Reminders()) == 1
		return nil
	}

	require.NoError(t, s.DeleteReminder(context.Background(), "r1"))
	assert.True(t, sawRemoved)
	assert.Equal(t, []string{"r2"}, reminderIDs(s.Reminders()))
}

func TestDeleteReminder_FailureRestoresExactSnapshot(t *testing.T) {
	api := &fakeAPI{
		delete: func(context.Context, string) error {
			return errors.New("boom")
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}

	require.Error(t, s.DeleteReminder(context.Background(), "r2"))

	// Restored in the original order, no refetch needed.
	assert.Equal(t, []string{"r1", "r2", "r3"}, reminderIDs(s.Reminders()))
}

func TestDeleteReminder_UnauthorizedRestoresAndFlags(t *testing.T) {
	api := &fakeAPI{
		delete: func(context.Context, string) error {
			return client.ErrUnauthorized
		},
	}
	s := newTestStore(t, api, testNow())
	s.reminders = []Reminder{{ID: "r1"}}

	require.Error(t, s.DeleteReminder(context.Background(), "r1"))
	assert.Equal(t, []string{"r1"}, reminderIDs(s.Reminders()))
	assert.True(t, s.AuthRequired())
}

func TestAddArea_ReturnsServerID(t *testing.T) {
	api := &fakeAPI{
		createArea: func(_ context.Context, label string) (map[string]any, error) {
			return map[string]any{"id": "a9", "label": label}, nil
		},
	}
	s := newTestStore(t, api, testNow())

	id, err := s.AddArea(context.Background(), "  Garden  ")
	require.NoError(t, err)
	assert.Equal(t, "a9", id)
	assert.Equal(t, "Garden", s.AreaLabel("a9"))
}

func TestAddArea_EmptyLabelRejected(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, testNow())

	_, err := s.AddArea(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyLabel)
	assert.Empty(t, s.Areas())
}

func TestAddArea_UnauthorizedSetsFlag(t *testing.T) {
	api := &fakeAPI{
		createArea: func(context.Context, string) (map[string]any, error) {
			return nil, client.ErrUnauthorized
		},
	}
	s := newTestStore(t, api, testNow())

	_, err := s.AddArea(context.Background(), "Garden")
	require.Error(t, err)
	assert.True(t, s.AuthRequired())
}

func TestSetSettings_RetroactiveRetention(t *testing.T) {
	now := testNow()
	recent := now.Add(-2 * 24 * time.Hour)
	old := now.Add(-20 * 24 * time.Hour)
	s := newTestStore(t, &fakeAPI{}, now)
	s.reminders = []Reminder{
		{ID: "pending", Status: StatusPending},
		{ID: "recent", Status: StatusDone, CompletedAt: &recent},
		{ID: "old", Status: StatusDone, CompletedAt: &old},
	}

	s.SetSettings(func(cur Settings) Settings {
		one := 1
		cur.AutoDeleteCompletedAfterDays = &one
		return cur
	})

	assert.Equal(t, []string{"pending"}, reminderIDs(s.Reminders()))
}

func TestSetFiltersAndView(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, testNow())

	s.SetView(ViewAll)
	assert.Equal(t, ViewAll, s.View())

	s.SetFilters(func(cur Filters) Filters {
		cur.Priority = string(PriorityHigh)
		return cur
	})
	s.SetAreaFilter("a1")

	assert.Equal(t, Filters{Area: "a1", Status: string(StatusPending), Priority: string(PriorityHigh)}, s.Filters())
}

func TestVisibleGroups(t *testing.T) {
	now := testNow()
	today := now.Add(time.Hour)
	s := newTestStore(t, &fakeAPI{}, now)
	a1, a2 := "a1", "a2"
	s.reminders = []Reminder{
		{ID: "r1", AreaID: &a1, DueAt: &today, Status: StatusPending},
		{ID: "r2", AreaID: &a2, DueAt: &today, Status: StatusDone},
		{ID: "r3", AreaID: &a1, DueAt: &today, Status: StatusPending},
		{ID: "r4", Status: StatusPending},
	}

	// Default view today + pending filter: r2 is done, r4 undated.
	groups := s.VisibleGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"r1", "r3"}, reminderIDs(groups[0].Reminders))
}

func TestCreateAreaThenReminderDueToday(t *testing.T) {
	now := testNow()
	api := &fakeAPI{
		createArea: func(_ context.Context, label string) (map[string]any, error) {
			return map[string]any{"id": "a-garden", "label": label}, nil
		},
	}
	s := newTestStore(t, api, now)

	areaID, err := s.AddArea(context.Background(), "garden")
	require.NoError(t, err)

	due := now.Add(2 * time.Hour)
	api.create = func(_ context.Context, req client.CreateReminderRequest) (map[string]any, error) {
		require.NotNil(t, req.AreaID)
		return map[string]any{
			"id":        "r1",
			"title":     req.Title,
			"areaId":    *req.AreaID,
			"dueAt":     req.DueAt.Format(time.RFC3339),
			"hasTime":   true,
			"frequency": "once",
			"priority":  "medium",
			"status":    "pending",
		}, nil
	}
	require.NoError(t, s.AddReminder(context.Background(), ReminderInput{
		Title:   "Water tomatoes",
		AreaID:  &areaID,
		DueAt:   &due,
		HasTime: true,
	}))

	// The default view (today, pending) shows it grouped under the new
	// area, with the label already resolvable.
	groups := s.VisibleGroups()
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].AreaID)
	assert.Equal(t, areaID, *groups[0].AreaID)
	assert.Equal(t, "garden", s.AreaLabel(areaID))
	require.Len(t, groups[0].Reminders, 1)

	// Not overdue while the due instant is still ahead; flips right after.
	r := groups[0].Reminders[0]
	assert.False(t, IsOverdue(r, now))
	assert.True(t, IsOverdue(r, due.Add(time.Minute)))
}

func TestServerAssignedAreaResolvesAfterRefresh(t *testing.T) {
	api := &fakeAPI{
		create: func(_ context.Context, req client.CreateReminderRequest) (map[string]any, error) {
			// No areaId supplied: the server assigns its default area,
			// which this client has never fetched.
			r := rawReminder("r1", req.Title, "pending")
			r["areaId"] = "a-default"
			return r, nil
		},
	}
	s := newTestStore(t, api, testNow())

	require.NoError(t, s.AddReminder(context.Background(), ReminderInput{Title: "Buy milk"}))

	r := s.Reminders()[0]
	require.NotNil(t, r.AreaID)
	assert.Equal(t, "a-default", *r.AreaID)
	assert.Equal(t, UnknownAreaLabel, s.AreaLabel(*r.AreaID))

	api.listAreas = func(context.Context) ([]map[string]any, error) {
		return []map[string]any{{"id": "a-default", "label": "general"}}, nil
	}
	require.NoError(t, s.LoadAreas(context.Background()))
	assert.Equal(t, "general", s.AreaLabel(*r.AreaID))
}

func TestReminders_ReturnsCopy(t *testing.T) {
	s := newTestStore(t, &fakeAPI{}, testNow())
	s.reminders = []Reminder{{ID: "r1", Title: "keep"}}

	got := s.Reminders()
	got[0].Title = "mutated"

	assert.Equal(t, "keep", s.Reminders()[0].Title)
}
