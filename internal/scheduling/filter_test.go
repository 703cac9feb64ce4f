package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medstaff_backend/internal/models"
)

func facilityID(id int64) *int64 { return &id }

func sampleShifts() []models.Shift {
	day := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	return []models.Shift{
		{ID: 1, Title: "ICU Day Shift", FacilityID: facilityID(1), Department: "ICU", Specialty: "Registered Nurse", Status: models.ShiftStatusOpen, Urgency: models.UrgencyHigh, StartTime: day},
		{ID: 2, Title: "ER Night", FacilityID: facilityID(2), Department: "ER", Specialty: "Registered Nurse", Status: models.ShiftStatusAssigned, Urgency: models.UrgencyLow, StartTime: day.Add(12 * time.Hour)},
		{ID: 3, Title: "Med-Surg Float", FacilityID: facilityID(1), Department: "Med-Surg", Specialty: "Licensed Practical Nurse", Status: models.ShiftStatusOpen, Urgency: models.UrgencyCritical, StartTime: day.Add(24 * time.Hour)},
		{ID: 4, Title: "Rehab Coverage", Department: "Rehab", Specialty: "Physical Therapist", Status: models.ShiftStatusCompleted, Urgency: models.UrgencyMedium, StartTime: day.Add(48 * time.Hour)},
	}
}

func TestFilterShiftsAllCriteriaIsIdentity(t *testing.T) {
	shifts := sampleShifts()
	criteria := FilterCriteria{
		FacilityID: FilterAll,
		Department: FilterAll,
		Specialty:  FilterAll,
		Status:     FilterAll,
		Urgency:    FilterAll,
		Search:     "",
	}
	assert.Equal(t, shifts, FilterShifts(shifts, criteria))

	// Empty criteria behave the same as explicit "all".
	assert.Equal(t, shifts, FilterShifts(shifts, FilterCriteria{}))
}

func TestFilterShiftsIsSubsetAndIdempotent(t *testing.T) {
	shifts := sampleShifts()
	criteria := FilterCriteria{Department: "ICU"}

	once := FilterShifts(shifts, criteria)
	assert.Subset(t, shifts, once)
	assert.Equal(t, once, FilterShifts(once, criteria))
}

func TestFilterShiftsByDepartment(t *testing.T) {
	shifts := sampleShifts()
	got := FilterShifts(shifts, FilterCriteria{Department: "ICU"})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterShiftsCombinesCriteria(t *testing.T) {
	shifts := sampleShifts()
	got := FilterShifts(shifts, FilterCriteria{
		FacilityID: "1",
		Status:     models.ShiftStatusOpen,
	})

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilterShiftsEnumMatchIsCaseSensitive(t *testing.T) {
	shifts := sampleShifts()
	assert.Empty(t, FilterShifts(shifts, FilterCriteria{Department: "icu"}))
}

func TestFilterShiftsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	shifts := sampleShifts()

	got := FilterShifts(shifts, FilterCriteria{Search: "night"})
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	// Matches specialty as well as title.
	got = FilterShifts(shifts, FilterCriteria{Search: "therapist"})
	assert.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)

	assert.Empty(t, FilterShifts(shifts, FilterCriteria{Search: "cardiology"}))
}

func TestFilterShiftsAbsentFacilityNeverMatchesConcreteID(t *testing.T) {
	shifts := sampleShifts()
	got := FilterShifts(shifts, FilterCriteria{FacilityID: "2"})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterShiftsEmptyInput(t *testing.T) {
	got := FilterShifts(nil, FilterCriteria{Department: "ICU"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
