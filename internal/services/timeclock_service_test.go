package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
)

// fakeTimeClockRepo is an in-memory TimeClockRepository test double.
type fakeTimeClockRepo struct {
	nextID  int64
	entries map[int64]*models.TimeClockEntry
}

func newFakeTimeClockRepo() *fakeTimeClockRepo {
	return &fakeTimeClockRepo{nextID: 1, entries: map[int64]*models.TimeClockEntry{}}
}

func (f *fakeTimeClockRepo) CreateEntry(_ repositories.SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error) {
	for _, existing := range f.entries {
		if existing.UserID == entry.UserID && existing.ClockOut == nil {
			return nil, repositories.ErrDuplicateKey
		}
	}
	entry.ID = f.nextID
	f.nextID++
	stored := *entry
	f.entries[entry.ID] = &stored
	return entry, nil
}

func (f *fakeTimeClockRepo) GetActiveEntry(userID int64) (*models.TimeClockEntry, error) {
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.ClockOut == nil {
			found := *entry
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeTimeClockRepo) GetEntryByID(id int64) (*models.TimeClockEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := *entry
	return &found, nil
}

func (f *fakeTimeClockRepo) GetEntriesByUser(userID int64, _, _ *time.Time) ([]models.TimeClockEntry, error) {
	entries := []models.TimeClockEntry{}
	for _, entry := range f.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (f *fakeTimeClockRepo) CloseEntry(_ repositories.SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error) {
	stored, ok := f.entries[entry.ID]
	if !ok || stored.ClockOut != nil {
		return nil, repositories.ErrNotFound
	}
	updated := *entry
	f.entries[entry.ID] = &updated
	return entry, nil
}

// fakeStaffRepo resolves staff members by linked user id; other methods are
// unused by the time clock.
type fakeStaffRepo struct {
	byUserID map[int64]*models.StaffMember
}

func (f *fakeStaffRepo) CreateStaffMember(_ repositories.SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	return staff, nil
}
func (f *fakeStaffRepo) GetStaffMemberByID(int64) (*models.StaffMember, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeStaffRepo) GetStaffMemberByUserID(userID int64) (*models.StaffMember, error) {
	staff, ok := f.byUserID[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return staff, nil
}
func (f *fakeStaffRepo) GetStaffMembers(*string, *string) ([]models.StaffMember, error) {
	return nil, nil
}
func (f *fakeStaffRepo) UpdateStaffMember(_ repositories.SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	return staff, nil
}
func (f *fakeStaffRepo) UpdateProfileImage(repositories.SQLExecutor, int64, string) error { return nil }
func (f *fakeStaffRepo) BulkUpdateField(repositories.SQLExecutor, []int64, string, interface{}) (int64, error) {
	return 0, nil
}
func (f *fakeStaffRepo) AddFacility(repositories.SQLExecutor, int64, int64) error    { return nil }
func (f *fakeStaffRepo) RemoveFacility(repositories.SQLExecutor, int64, int64) error { return nil }
func (f *fakeStaffRepo) GetStaffFacilities(int64) ([]models.Facility, error)         { return nil, nil }

func rate(v float64) *float64 { return &v }

func newTestTimeClockService(clock time.Time) (*timeClockService, *fakeTimeClockRepo) {
	timeClockRepo := newFakeTimeClockRepo()
	staffRepo := &fakeStaffRepo{byUserID: map[int64]*models.StaffMember{
		7: {ID: 70, FirstName: "Dana", LastName: "Reyes", Specialty: "Registered Nurse", HourlyRate: rate(50)},
	}}
	svc := &timeClockService{
		timeClockRepo: timeClockRepo,
		staffRepo:     staffRepo,
		now:           func() time.Time { return clock },
	}
	return svc, timeClockRepo
}

func TestClockInOpensSingleSession(t *testing.T) {
	clock := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clock)

	entry, err := svc.ClockIn(7)
	require.NoError(t, err)
	assert.Equal(t, clock, entry.ClockIn)
	assert.Nil(t, entry.ClockOut)

	_, err = svc.ClockIn(7)
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
}

func TestClockOutDraftCapturesSessionWithZeroBreak(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	_, err := svc.ClockIn(7)
	require.NoError(t, err)

	svc.now = func() time.Time { return clockIn.Add(8 * time.Hour) }
	draft, err := svc.ClockOutDraft(7)
	require.NoError(t, err)
	assert.Equal(t, clockIn, draft.ClockIn)
	assert.Equal(t, clockIn.Add(8*time.Hour), draft.ClockOut)
	assert.Equal(t, 0, draft.BreakMinutes)
	assert.Equal(t, 50.0, draft.HourlyRate)
}

func TestClockOutDraftRequiresOpenSession(t *testing.T) {
	svc, _ := newTestTimeClockService(time.Now())
	_, err := svc.ClockOutDraft(7)
	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestSubmitEntryComputesHoursAndEarnings(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	_, err := svc.ClockIn(7)
	require.NoError(t, err)

	entry, err := svc.SubmitEntry(7, SubmitTimeClockRequest{
		ClockIn:      clockIn.Format(time.RFC3339),
		ClockOut:     clockIn.Add(8 * time.Hour).Format(time.RFC3339),
		BreakMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 7.5, entry.Hours)
	assert.Equal(t, 375.0, entry.Earnings) // 7.5h x $50
	require.NotNil(t, entry.ClockOut)

	// Session is closed; submitting again fails.
	_, err = svc.SubmitEntry(7, SubmitTimeClockRequest{
		ClockIn:  clockIn.Format(time.RFC3339),
		ClockOut: clockIn.Add(8 * time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestSubmitEntryRejectsClockOutBeforeClockIn(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	_, err := svc.ClockIn(7)
	require.NoError(t, err)

	_, err = svc.SubmitEntry(7, SubmitTimeClockRequest{
		ClockIn:  clockIn.Format(time.RFC3339),
		ClockOut: clockIn.Add(-time.Minute).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrClockOutBeforeIn)
}

func TestSubmitEntryZeroDurationYieldsZeroEarnings(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	_, err := svc.ClockIn(7)
	require.NoError(t, err)

	entry, err := svc.SubmitEntry(7, SubmitTimeClockRequest{
		ClockIn:  clockIn.Format(time.RFC3339),
		ClockOut: clockIn.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Zero(t, entry.Hours)
	assert.Zero(t, entry.Earnings)
}

func TestSubmitEntryRejectsSessionsOverTwelveHours(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	_, err := svc.ClockIn(7)
	require.NoError(t, err)

	_, err = svc.SubmitEntry(7, SubmitTimeClockRequest{
		ClockIn:  clockIn.Format(time.RFC3339),
		ClockOut: clockIn.Add(12*time.Hour + time.Minute).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrSessionTooLong)
}

func TestGetEntryIsScopedToOwner(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, _ := newTestTimeClockService(clockIn)

	opened, err := svc.ClockIn(7)
	require.NoError(t, err)

	got, err := svc.GetEntry(7, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, got.ID)

	// Another user's lookup of the same entry reads as not found.
	_, err = svc.GetEntry(8, opened.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = svc.GetEntry(7, 999)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestValidateAdjustmentBreakRules(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(4 * time.Hour)

	assert.NoError(t, ValidateAdjustment(clockIn, clockOut, 30))
	assert.ErrorIs(t, ValidateAdjustment(clockIn, clockOut, -1), ErrNegativeBreak)
	assert.ErrorIs(t, ValidateAdjustment(clockIn, clockOut, 241), ErrBreakExceedsShift)
	// Exactly 12 hours is allowed.
	assert.NoError(t, ValidateAdjustment(clockIn, clockIn.Add(12*time.Hour), 0))
}

func TestComputeEarningsRounding(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	hours, earnings := ComputeEarnings(clockIn, clockIn.Add(7*time.Hour+20*time.Minute), 20, 48)

	assert.Equal(t, 7.0, hours)
	assert.Equal(t, 336.0, earnings)
}
