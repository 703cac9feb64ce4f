package scheduling

import (
	"sort"
	"time"

	"medstaff_backend/internal/models"
)

// DayKeyFormat is the ISO date-only key used for calendar bins.
const DayKeyFormat = "2006-01-02"

// DaysPerWeek is the length of every generated calendar window.
const DaysPerWeek = 7

// DayKey truncates a timestamp to its calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// WeekStart returns midnight of the Monday on or before the anchor.
func WeekStart(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	// Weekday() counts Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekWindow generates the 7 consecutive day keys of the week containing the
// anchor. AddDate carries month and year boundaries.
func WeekWindow(anchor time.Time) []string {
	start := WeekStart(anchor)
	keys := make([]string, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		keys = append(keys, DayKey(start.AddDate(0, 0, i)))
	}
	return keys
}

// PrevWeek and NextWeek move the anchor a full week in either direction.
func PrevWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, -DaysPerWeek) }
func NextWeek(anchor time.Time) time.Time { return anchor.AddDate(0, 0, DaysPerWeek) }

// BinByDay partitions shifts into day-keyed bins. Every input shift lands in
// exactly one bin (keyed by its start time's calendar day) and each bin is
// stably sorted by start time, then id.
func BinByDay(shifts []models.Shift) map[string][]models.Shift {
	bins := make(map[string][]models.Shift)
	for _, shift := range shifts {
		key := DayKey(shift.StartTime)
		bins[key] = append(bins[key], shift)
	}
	for key := range bins {
		bin := bins[key]
		sort.SliceStable(bin, func(i, j int) bool {
			if bin[i].StartTime.Equal(bin[j].StartTime) {
				return bin[i].ID < bin[j].ID
			}
			return bin[i].StartTime.Before(bin[j].StartTime)
		})
	}
	return bins
}
