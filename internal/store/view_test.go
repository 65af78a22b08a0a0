package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestIsOverdue_TimedReminder(t *testing.T) {
	due := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	r := Reminder{ID: "r1", Status: StatusPending, DueAt: &due, HasTime: true}

	assert.False(t, IsOverdue(r, due.Add(-time.Minute)))
	assert.False(t, IsOverdue(r, due))
	assert.True(t, IsOverdue(r, due.Add(time.Nanosecond)))
}

func TestIsOverdue_DateOnlyGetsEndOfDayGrace(t *testing.T) {
	loc := time.UTC
	due := DateOnlyDueAt(2026, time.March, 10, loc)
	r := Reminder{ID: "r1", Status: StatusPending, DueAt: &due, HasTime: false}

	// Still "due today" right up to the last instant of the day.
	assert.False(t, IsOverdue(r, time.Date(2026, 3, 10, 14, 0, 0, 0, loc)))
	assert.False(t, IsOverdue(r, time.Date(2026, 3, 10, 23, 59, 59, 0, loc)))
	assert.True(t, IsOverdue(r, time.Date(2026, 3, 11, 0, 0, 0, 0, loc)))
}

func TestIsOverdue_DoneOrUnscheduledNever(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsOverdue(Reminder{Status: StatusDone, DueAt: &past, HasTime: true}, now))
	assert.False(t, IsOverdue(Reminder{Status: StatusPending}, now))
}

func TestFilterReminders_Views(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := Filters{Area: FilterAll, Status: FilterAll, Priority: FilterAll}

	earlierToday := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	laterToday := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	reminders := []Reminder{
		{ID: "earlier", DueAt: &earlierToday, Status: StatusPending},
		{ID: "later", DueAt: &laterToday, Status: StatusPending},
		{ID: "tomorrow", DueAt: &tomorrow, Status: StatusPending},
		{ID: "yesterday", DueAt: &yesterday, Status: StatusPending},
		{ID: "someday", Status: StatusPending},
	}

	ids := func(rs []Reminder) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	// Today: anything due on the current calendar day, even if the clock
	// time already passed.
	assert.Equal(t, []string{"earlier", "later"},
		ids(FilterReminders(reminders, all, ViewToday, now)))

	// Upcoming: strictly after now, so earlier today is excluded but later
	// today is in.
	assert.Equal(t, []string{"later", "tomorrow"},
		ids(FilterReminders(reminders, all, ViewUpcoming, now)))

	// All: no date window, undated reminders included.
	assert.Equal(t, []string{"earlier", "later", "tomorrow", "yesterday", "someday"},
		ids(FilterReminders(reminders, all, ViewAll, now)))
}

func TestFilterReminders_Dimensions(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	reminders := []Reminder{
		{ID: "r1", AreaID: strptr("a1"), Status: StatusPending, Priority: PriorityHigh},
		{ID: "r2", AreaID: strptr("a2"), Status: StatusPending, Priority: PriorityLow},
		{ID: "r3", AreaID: strptr("a1"), Status: StatusDone, Priority: PriorityHigh},
		{ID: "r4", Status: StatusPending, Priority: PriorityMedium},
	}

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			"all pass-through",
			Filters{Area: FilterAll, Status: FilterAll, Priority: FilterAll},
			[]string{"r1", "r2", "r3", "r4"},
		},
		{
			"area narrows and excludes unassigned",
			Filters{Area: "a1", Status: FilterAll, Priority: FilterAll},
			[]string{"r1", "r3"},
		},
		{
			"status narrows",
			Filters{Area: FilterAll, Status: string(StatusPending), Priority: FilterAll},
			[]string{"r1", "r2", "r4"},
		},
		{
			"priority narrows",
			Filters{Area: FilterAll, Status: FilterAll, Priority: string(PriorityHigh)},
			[]string{"r1", "r3"},
		},
		{
			"dimensions conjoin",
			Filters{Area: "a1", Status: string(StatusPending), Priority: string(PriorityHigh)},
			[]string{"r1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterReminders(reminders, tc.filters, ViewAll, now)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestFilterReminders_TodayUsesLocalCalendar(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:00 UTC on March 10 is already March 11 in Tokyo.
	due := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, tokyo)
	reminders := []Reminder{{ID: "r1", DueAt: &due, Status: StatusPending}}
	all := Filters{Area: FilterAll, Status: FilterAll, Priority: FilterAll}

	got := FilterReminders(reminders, all, ViewToday, now)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}

func TestGroupByArea(t *testing.T) {
	reminders := []Reminder{
		{ID: "r1", AreaID: strptr("a1")},
		{ID: "r2"},
		{ID: "r3", AreaID: strptr("a2")},
		{ID: "r4", AreaID: strptr("a1")},
		{ID: "r5"},
	}

	groups := GroupByArea(reminders)
	require.Len(t, groups, 3)

	require.NotNil(t, groups[0].AreaID)
	assert.Equal(t, "a1", *groups[0].AreaID)
	assert.Equal(t, "r1", groups[0].Reminders[0].ID)
	assert.Equal(t, "r4", groups[0].Reminders[1].ID)

	assert.Nil(t, groups[1].AreaID)
	assert.Len(t, groups[1].Reminders, 2)

	require.NotNil(t, groups[2].AreaID)
	assert.Equal(t, "a2", *groups[2].AreaID)
}

func TestGroupByArea_Empty(t *testing.T) {
	assert.Empty(t, GroupByArea(nil))
}
