package availability

import (
	"testing"
	"time"

	"counselconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

func TestOverlapsSymmetric(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint", at(t, 9, 0), at(t, 9, 30), at(t, 11, 0), at(t, 11, 30), false},
		{"contained", at(t, 10, 0), at(t, 10, 30), at(t, 9, 0), at(t, 12, 0), true},
		{"partial", at(t, 9, 45), at(t, 10, 15), at(t, 10, 0), at(t, 10, 30), true},
		{"identical", at(t, 10, 0), at(t, 10, 30), at(t, 10, 0), at(t, 10, 30), true},
		{"back to back before", at(t, 9, 30), at(t, 10, 0), at(t, 10, 0), at(t, 10, 30), false},
		{"back to back after", at(t, 10, 30), at(t, 11, 0), at(t, 10, 0), at(t, 10, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestGenerateSlotsAroundOneBooking(t *testing.T) {
	window := models.TimeWindow{Start: at(t, 9, 0), End: at(t, 12, 0)}
	busy := []models.BusyInterval{{Start: at(t, 10, 0), End: at(t, 10, 30)}}

	slots := GenerateSlots(window, busy, 30*time.Minute)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, SlotLabels(slots))
	assert.Equal(t, []string{"10:00 - 10:30"}, BusyLabels(busy))
}

func TestGenerateSlotsEmptyCalendar(t *testing.T) {
	window := models.TimeWindow{Start: at(t, 9, 0), End: at(t, 12, 0)}

	slots := GenerateSlots(window, nil, 30*time.Minute)

	// Six half-hour slots fill the window exactly; nothing spills past 12:00.
	require.Len(t, slots, 6)
	assert.Equal(t, "09:00", slots[0].Label())
	assert.Equal(t, "11:30", slots[5].Label())
}

func TestGenerateSlotsNeverExceedsWindow(t *testing.T) {
	window := models.TimeWindow{Start: at(t, 9, 0), End: at(t, 12, 0)}
	busy := []models.BusyInterval{
		{Start: at(t, 9, 15), End: at(t, 9, 45)},
		{Start: at(t, 11, 0), End: at(t, 12, 0)},
	}

	slots := GenerateSlots(window, busy, 30*time.Minute)

	windowLen := window.End.Sub(window.Start)
	assert.LessOrEqual(t, time.Duration(len(slots))*30*time.Minute, windowLen)
	for _, s := range slots {
		// No emitted slot may touch a busy interval.
		assert.False(t, Conflicts(s.Start, s.Start.Add(30*time.Minute), busy),
			"slot %s overlaps a busy interval", s.Label())
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	window := models.TimeWindow{Start: at(t, 17, 0), End: at(t, 21, 0)}
	busy := []models.BusyInterval{{Start: at(t, 18, 0), End: at(t, 19, 0)}}

	first := GenerateSlots(window, busy, 30*time.Minute)
	second := GenerateSlots(window, busy, 30*time.Minute)

	assert.Equal(t, first, second)
}

func TestGenerateSlotsHourGranularity(t *testing.T) {
	window := models.TimeWindow{Start: at(t, 9, 0), End: at(t, 12, 0)}
	busy := []models.BusyInterval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}

	slots := GenerateSlots(window, busy, time.Hour)

	assert.Equal(t, []string{"09:00", "11:00"}, SlotLabels(slots))
}

func TestWindowForLabel(t *testing.T) {
	date := time.Date(2026, time.March, 9, 14, 22, 5, 0, time.UTC)

	cases := []struct {
		label      string
		start, end int
	}{
		{"morning", 9, 12},
		{"Afternoon", 12, 17},
		{"EVENING", 17, 21},
		{"  morning ", 9, 12},
	}
	for _, tc := range cases {
		window, ok := WindowForLabel(date, tc.label, time.UTC)
		require.True(t, ok, "label %q", tc.label)
		assert.Equal(t, tc.start, window.Start.Hour())
		assert.Equal(t, tc.end, window.End.Hour())
		assert.Equal(t, 0, window.Start.Minute())
	}
}

func TestWindowForLabelUnknown(t *testing.T) {
	_, ok := WindowForLabel(time.Now(), "midnight", time.UTC)
	assert.False(t, ok)
}

func TestWorkingDaySpansNineToNine(t *testing.T) {
	window := WorkingDay(time.Date(2026, time.March, 9, 3, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, 9, window.Start.Hour())
	assert.Equal(t, 21, window.End.Hour())
}
