package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownEnums(t *testing.T) {
	assert.True(t, KnownFrequency(FrequencyOnce))
	assert.True(t, KnownFrequency(FrequencyMonthly))
	assert.False(t, KnownFrequency(Frequency("yearly")))

	assert.True(t, KnownPriority(PriorityHigh))
	assert.False(t, KnownPriority(Priority("urgent")))

	assert.True(t, KnownStatus(StatusSnoozed))
	assert.False(t, KnownStatus(Status("archived")))
}

func TestCoerceEnums(t *testing.T) {
	// Known values pass through, everything else downgrades. Same rule for
	// all three enums.
	assert.Equal(t, FrequencyWeekly, CoerceFrequency(FrequencyWeekly))
	assert.Equal(t, FrequencyOnce, CoerceFrequency(Frequency("yearly")))

	assert.Equal(t, PriorityLow, CoercePriority(PriorityLow))
	assert.Equal(t, PriorityMedium, CoercePriority(Priority("urgent")))

	assert.Equal(t, StatusDone, CoerceStatus(StatusDone))
	assert.Equal(t, StatusPending, CoerceStatus(Status("archived")))
}

func TestCompleteAndReopen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := &Reminder{Status: StatusPending}

	r.Complete(now)
	assert.True(t, r.IsDone())
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, now, *r.CompletedAt)

	r.Reopen()
	assert.False(t, r.IsDone())
	// Status and completion timestamp move together, never independently.
	assert.Nil(t, r.CompletedAt)
}
