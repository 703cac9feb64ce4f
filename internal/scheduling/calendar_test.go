package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstaff_backend/internal/models"
)

func TestWeekWindowIsSevenConsecutiveDays(t *testing.T) {
	anchors := []time.Time{
		time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC),  // mid-week
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),    // anchor is itself a Monday
		time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC),  // Sunday, end of week
		time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),  // year boundary
		time.Date(2025, 2, 28, 8, 0, 0, 0, time.UTC),    // month boundary
		time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC),    // leap day
	}

	for _, anchor := range anchors {
		keys := WeekWindow(anchor)
		require.Len(t, keys, 7, "anchor %s", anchor)

		start, err := time.Parse(DayKeyFormat, keys[0])
		require.NoError(t, err)
		assert.Equal(t, time.Monday, start.Weekday(), "anchor %s", anchor)

		for i := 1; i < len(keys); i++ {
			prev, err := time.Parse(DayKeyFormat, keys[i-1])
			require.NoError(t, err)
			next, err := time.Parse(DayKeyFormat, keys[i])
			require.NoError(t, err)
			assert.Equal(t, prev.AddDate(0, 0, 1), next, "anchor %s, day %d", anchor, i)
		}
	}
}

func TestWeekWindowContainsAnchorDay(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Contains(t, WeekWindow(anchor), DayKey(anchor))
}

func TestWeekWindowCrossesYearBoundary(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) // Wednesday
	keys := WeekWindow(anchor)
	assert.Equal(t, "2024-12-30", keys[0])
	assert.Equal(t, "2025-01-05", keys[6])
}

func TestPrevNextWeekShiftAnchorBySevenDays(t *testing.T) {
	anchor := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, anchor.AddDate(0, 0, -7), PrevWeek(anchor))
	assert.Equal(t, anchor.AddDate(0, 0, 7), NextWeek(anchor))
	// Round trip is the identity.
	assert.Equal(t, anchor, NextWeek(PrevWeek(anchor)))
}

func TestBinByDayPartitionsInput(t *testing.T) {
	shifts := sampleShifts()
	bins := BinByDay(shifts)

	total := 0
	seen := map[int64]string{}
	for key, bin := range bins {
		for _, shift := range bin {
			assert.Equal(t, key, DayKey(shift.StartTime))
			// Disjoint: no shift appears under two keys.
			_, dup := seen[shift.ID]
			assert.False(t, dup, "shift %d binned twice", shift.ID)
			seen[shift.ID] = key
			total++
		}
	}
	assert.Equal(t, len(shifts), total)
}

func TestBinByDaySortsWithinDayByStartTime(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shifts := []models.Shift{
		{ID: 1, StartTime: day.Add(19 * time.Hour)},
		{ID: 2, StartTime: day.Add(7 * time.Hour)},
		{ID: 3, StartTime: day.Add(7 * time.Hour)}, // same start, ordered by id
		{ID: 4, StartTime: day.Add(15 * time.Hour)},
	}

	bins := BinByDay(shifts)
	require.Len(t, bins, 1)

	bin := bins[DayKey(day)]
	require.Len(t, bin, 4)
	assert.Equal(t, []int64{2, 3, 4, 1}, []int64{bin[0].ID, bin[1].ID, bin[2].ID, bin[3].ID})
}

func TestBinByDayEmptyInput(t *testing.T) {
	assert.Empty(t, BinByDay(nil))
}
