package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
	"medstaff_backend/internal/scheduling"
)

// fakeShiftRepo serves canned shifts, honoring the database-level filter the
// service pushes down.
type fakeShiftRepo struct {
	nextID int64
	shifts []models.Shift
	blocks []models.BlockShift
}

func (f *fakeShiftRepo) CreateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	f.nextID++
	shift.ID = f.nextID
	f.shifts = append(f.shifts, *shift)
	return shift, nil
}

func (f *fakeShiftRepo) GetShiftByID(id int64) (*models.Shift, error) {
	for _, shift := range f.shifts {
		if shift.ID == id {
			found := shift
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShiftRepo) GetShifts(filter repositories.ShiftFilter) ([]models.Shift, error) {
	matched := []models.Shift{}
	for _, shift := range f.shifts {
		if filter.FacilityID != nil && (shift.FacilityID == nil || *shift.FacilityID != *filter.FacilityID) {
			continue
		}
		if filter.Status != nil && shift.Status != *filter.Status {
			continue
		}
		if filter.From != nil && shift.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !shift.StartTime.Before(*filter.To) {
			continue
		}
		matched = append(matched, shift)
	}
	return matched, nil
}

func (f *fakeShiftRepo) UpdateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	for i, existing := range f.shifts {
		if existing.ID == shift.ID {
			f.shifts[i] = *shift
			return shift, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShiftRepo) DeleteShift(_ repositories.SQLExecutor, id int64) error {
	for i, existing := range f.shifts {
		if existing.ID == id {
			f.shifts = append(f.shifts[:i], f.shifts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeShiftRepo) CreateBlockShift(_ repositories.SQLExecutor, block *models.BlockShift) (*models.BlockShift, error) {
	f.nextID++
	block.ID = f.nextID
	f.blocks = append(f.blocks, *block)
	return block, nil
}

func (f *fakeShiftRepo) GetBlockShiftByID(id int64) (*models.BlockShift, error) {
	for _, block := range f.blocks {
		if block.ID == id {
			found := block
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShiftRepo) GetBlockShifts(facilityID *int64) ([]models.BlockShift, error) {
	matched := []models.BlockShift{}
	for _, block := range f.blocks {
		if facilityID != nil && (block.FacilityID == nil || *block.FacilityID != *facilityID) {
			continue
		}
		matched = append(matched, block)
	}
	return matched, nil
}

// fakeFacilityRepo knows a fixed set of facility ids.
type fakeFacilityRepo struct {
	ids map[int64]bool
}

func (f *fakeFacilityRepo) CreateFacility(_ repositories.SQLExecutor, facility *models.Facility) (*models.Facility, error) {
	return facility, nil
}
func (f *fakeFacilityRepo) GetFacilityByID(id int64) (*models.Facility, error) {
	if !f.ids[id] {
		return nil, repositories.ErrNotFound
	}
	return &models.Facility{ID: id, Name: "Facility"}, nil
}
func (f *fakeFacilityRepo) GetFacilities() ([]models.Facility, error) { return nil, nil }
func (f *fakeFacilityRepo) UpdateFacility(_ repositories.SQLExecutor, facility *models.Facility) (*models.Facility, error) {
	return facility, nil
}

func newTestShiftService() (ShiftService, *fakeShiftRepo) {
	shiftRepo := &fakeShiftRepo{}
	facilityRepo := &fakeFacilityRepo{ids: map[int64]bool{1: true, 2: true}}
	return NewShiftService(shiftRepo, facilityRepo, nil), shiftRepo
}

func seedShift(repo *fakeShiftRepo, title, department string, facilityID int64, start time.Time) models.Shift {
	shift := models.Shift{
		Title:      title,
		FacilityID: &facilityID,
		Department: department,
		Specialty:  "Registered Nurse",
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
		HourlyRate: 48,
		Status:     models.ShiftStatusOpen,
		Urgency:    models.UrgencyMedium,
	}
	created, _ := repo.CreateShift(nil, &shift)
	return *created
}

func TestCreateShiftDerivesPremiumRate(t *testing.T) {
	svc, _ := newTestShiftService()

	multiplier := 1.35
	shift, err := svc.CreateShift(CreateShiftRequest{
		Title:             "ICU Day Shift",
		Department:        "ICU",
		Specialty:         "Registered Nurse",
		StartTime:         "2025-03-10T07:00:00Z",
		EndTime:           "2025-03-10T19:00:00Z",
		PremiumMultiplier: &multiplier,
	})
	require.NoError(t, err)

	want, err := scheduling.PremiumRate("Registered Nurse", multiplier)
	require.NoError(t, err)
	assert.Equal(t, want, shift.HourlyRate)
	assert.Equal(t, models.ShiftStatusOpen, shift.Status)
	assert.Equal(t, models.UrgencyMedium, shift.Urgency)
}

func TestCreateShiftRejectsInvertedWindow(t *testing.T) {
	svc, _ := newTestShiftService()

	hourly := 40.0
	_, err := svc.CreateShift(CreateShiftRequest{
		Title:      "Backwards",
		Department: "ER",
		Specialty:  "Registered Nurse",
		StartTime:  "2025-03-10T19:00:00Z",
		EndTime:    "2025-03-10T07:00:00Z",
		HourlyRate: &hourly,
	})
	assert.ErrorIs(t, err, ErrShiftValidation)
}

func TestCreateShiftUnknownFacility(t *testing.T) {
	svc, _ := newTestShiftService()

	hourly := 40.0
	missing := int64(99)
	_, err := svc.CreateShift(CreateShiftRequest{
		Title:      "Orphan",
		FacilityID: &missing,
		Department: "ER",
		Specialty:  "Registered Nurse",
		StartTime:  "2025-03-10T07:00:00Z",
		EndTime:    "2025-03-10T15:00:00Z",
		HourlyRate: &hourly,
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestGetShiftByIDAttachesFacility(t *testing.T) {
	svc, repo := newTestShiftService()
	monday := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	shift := seedShift(repo, "ICU Day", "ICU", 1, monday)

	got, err := svc.GetShiftByID(shift.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Facility)
	assert.Equal(t, int64(1), got.Facility.ID)

	_, err = svc.GetShiftByID(999)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestGetShiftsAppliesDerivedViewCriteria(t *testing.T) {
	svc, repo := newTestShiftService()
	monday := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

	seedShift(repo, "ICU Day", "ICU", 1, monday)
	seedShift(repo, "ER Night", "ER", 2, monday.Add(12*time.Hour))
	seedShift(repo, "ICU Weekend", "ICU", 2, monday.AddDate(0, 0, 5))

	got, err := svc.GetShifts(scheduling.FilterCriteria{Department: "ICU", FacilityID: "2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ICU Weekend", got[0].Title)
}

func TestGetShiftsRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestShiftService()
	_, err := svc.GetShifts(scheduling.FilterCriteria{Status: "parked"})
	assert.ErrorIs(t, err, ErrUnknownShiftStatus)
}

func TestGetCalendarBinsWeekAndDropsOutOfWindow(t *testing.T) {
	svc, repo := newTestShiftService()
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	early := seedShift(repo, "Mon Early", "ICU", 1, monday.Add(7*time.Hour))
	late := seedShift(repo, "Mon Late", "ICU", 1, monday.Add(19*time.Hour))
	seedShift(repo, "Next Week", "ICU", 1, monday.AddDate(0, 0, 9))

	view, err := svc.GetCalendar("2025-03-12", scheduling.FilterCriteria{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", view.WeekStart)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "2025-03-16", view.Days[6])

	// Every day key is present, empty days included.
	for _, day := range view.Days {
		_, ok := view.Shifts[day]
		assert.True(t, ok, "missing day bin %s", day)
	}

	mondayBin := view.Shifts["2025-03-10"]
	require.Len(t, mondayBin, 2)
	assert.Equal(t, early.ID, mondayBin[0].ID)
	assert.Equal(t, late.ID, mondayBin[1].ID)

	// The shift nine days out is not part of this window.
	total := 0
	for _, bin := range view.Shifts {
		total += len(bin)
	}
	assert.Equal(t, 2, total)
}

func TestGetCalendarRejectsBadAnchor(t *testing.T) {
	svc, _ := newTestShiftService()
	_, err := svc.GetCalendar("03/12/2025", scheduling.FilterCriteria{})
	assert.ErrorIs(t, err, ErrShiftDateFormat)
}

func TestUpdateShiftStatusTransitions(t *testing.T) {
	svc, repo := newTestShiftService()
	monday := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	shift := seedShift(repo, "ICU Day", "ICU", 1, monday)

	assigned := models.ShiftStatusAssigned
	assigneeID := int64(42)
	assigneeName := "Dana Reyes"
	updated, err := svc.UpdateShift(shift.ID, UpdateShiftRequest{
		Status:       &assigned,
		AssigneeID:   &assigneeID,
		AssigneeName: &assigneeName,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, int64(42), *updated.AssigneeID)

	bogus := "parked"
	_, err = svc.UpdateShift(shift.ID, UpdateShiftRequest{Status: &bogus})
	assert.ErrorIs(t, err, ErrUnknownShiftStatus)
}

func TestCreateBlockShiftValidatesRange(t *testing.T) {
	svc, _ := newTestShiftService()

	_, err := svc.CreateBlockShift(CreateBlockShiftRequest{
		Title:      "February Contract",
		Department: "Med-Surg",
		Specialty:  "Registered Nurse",
		StartDate:  "2025-03-14",
		EndDate:    "2025-03-01",
		Positions:  3,
	})
	assert.ErrorIs(t, err, ErrShiftValidation)

	block, err := svc.CreateBlockShift(CreateBlockShiftRequest{
		Title:      "March Contract",
		Department: "Med-Surg",
		Specialty:  "Registered Nurse",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-14",
		Positions:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, block.Positions)
	// Falls back to the specialty base rate when no explicit rate is given.
	base, ok := scheduling.BaseRate("Registered Nurse")
	require.True(t, ok)
	assert.Equal(t, base, block.HourlyRate)
}

func TestGetBlockShiftByID(t *testing.T) {
	svc, _ := newTestShiftService()

	created, err := svc.CreateBlockShift(CreateBlockShiftRequest{
		Title:      "March Contract",
		Department: "Med-Surg",
		Specialty:  "Registered Nurse",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-14",
		Positions:  3,
	})
	require.NoError(t, err)

	got, err := svc.GetBlockShiftByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "March Contract", got.Title)

	_, err = svc.GetBlockShiftByID(999)
	assert.ErrorIs(t, err, ErrBlockShiftNotFound)
}
