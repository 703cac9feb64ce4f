package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
)

// --- Custom Service Errors for Time Clock ---
var (
	ErrAlreadyClockedIn   = errors.New("user already has an open clock-in session")
	ErrNotClockedIn       = errors.New("user is not clocked in")
	ErrClockOutBeforeIn   = errors.New("clock-out time must not precede clock-in time")
	ErrSessionTooLong     = errors.New("adjusted session exceeds the maximum allowed duration")
	ErrNegativeBreak      = errors.New("break minutes cannot be negative")
	ErrBreakExceedsShift  = errors.New("break cannot exceed the session duration")
	ErrTimeClockTimeParse = errors.New("invalid time format for time clock, please use RFC3339 like format")
	ErrEntryNotFound      = errors.New("time clock entry not found")
)

// MaxSessionDuration caps a single adjusted clock-in/out session at 12 hours.
const MaxSessionDuration = 12 * time.Hour

// --- Time Clock DTOs ---

// ClockOutDraft is the editable first phase of clocking out: the captured
// session times with a zeroed break, which the worker may adjust before
// submitting.
type ClockOutDraft struct {
	EntryID      int64     `json:"entry_id"`
	ClockIn      time.Time `json:"clock_in"`
	ClockOut     time.Time `json:"clock_out"`
	BreakMinutes int       `json:"break_minutes"`
	HourlyRate   float64   `json:"hourly_rate"`
}

// SubmitTimeClockRequest is the second phase: possibly-adjusted times and
// break for the open session.
type SubmitTimeClockRequest struct {
	ClockIn      string `json:"clock_in" binding:"required"`
	ClockOut     string `json:"clock_out" binding:"required"`
	BreakMinutes int    `json:"break_minutes"`
}

// --- TimeClockService Interface ---
type TimeClockService interface {
	ClockIn(userID int64) (*models.TimeClockEntry, error)
	ActiveEntry(userID int64) (*models.TimeClockEntry, error)
	ClockOutDraft(userID int64) (*ClockOutDraft, error)
	SubmitEntry(userID int64, req SubmitTimeClockRequest) (*models.TimeClockEntry, error)
	GetEntry(userID, entryID int64) (*models.TimeClockEntry, error)
	GetEntries(userID int64, from, to *time.Time) ([]models.TimeClockEntry, error)
}

// --- timeClockService Implementation ---
type timeClockService struct {
	timeClockRepo repositories.TimeClockRepository
	staffRepo     repositories.StaffRepository
	db            *sql.DB
	now           func() time.Time
}

// NewTimeClockService creates a new instance of TimeClockService.
func NewTimeClockService(tr repositories.TimeClockRepository, sr repositories.StaffRepository, db *sql.DB) TimeClockService {
	return &timeClockService{
		timeClockRepo: tr,
		staffRepo:     sr,
		db:            db,
		now:           time.Now,
	}
}

// ValidateAdjustment checks an adjusted clock-out submission. Equal clock-in
// and clock-out times are allowed and yield a zero-duration session.
func ValidateAdjustment(clockIn, clockOut time.Time, breakMinutes int) error {
	if clockOut.Before(clockIn) {
		return ErrClockOutBeforeIn
	}
	if breakMinutes < 0 {
		return ErrNegativeBreak
	}
	duration := clockOut.Sub(clockIn)
	if duration > MaxSessionDuration {
		return ErrSessionTooLong
	}
	if time.Duration(breakMinutes)*time.Minute > duration {
		return ErrBreakExceedsShift
	}
	return nil
}

// ComputeEarnings derives worked hours and earnings from an adjusted session:
// (duration minus break) in hours, times the hourly rate. No overtime
// multiplier is applied here; overtime settings are consumed by payroll, not
// the time clock. Values are rounded to the cent / hundredth of an hour.
func ComputeEarnings(clockIn, clockOut time.Time, breakMinutes int, hourlyRate float64) (hours, earnings float64) {
	worked := clockOut.Sub(clockIn) - time.Duration(breakMinutes)*time.Minute
	if worked < 0 {
		worked = 0
	}
	hours = math.Round(worked.Hours()*100) / 100
	earnings = math.Round(hours*hourlyRate*100) / 100
	return hours, earnings
}

func (s *timeClockService) hourlyRateForUser(userID int64) (float64, error) {
	staff, err := s.staffRepo.GetStaffMemberByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrStaffNotFound
		}
		return 0, fmt.Errorf("failed to resolve staff member for user %d: %w", userID, err)
	}
	if staff.HourlyRate == nil {
		return 0, nil
	}
	return *staff.HourlyRate, nil
}

// ClockIn opens a session for the user. At most one open session per user is
// allowed.
func (s *timeClockService) ClockIn(userID int64) (*models.TimeClockEntry, error) {
	_, err := s.timeClockRepo.GetActiveEntry(userID)
	if err == nil {
		return nil, ErrAlreadyClockedIn
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}

	entry := &models.TimeClockEntry{
		UserID:  userID,
		ClockIn: s.now(),
	}
	createdEntry, err := s.timeClockRepo.CreateEntry(s.db, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to create clock-in entry: %w", err)
	}
	return createdEntry, nil
}

// ActiveEntry returns the user's open session.
func (s *timeClockService) ActiveEntry(userID int64) (*models.TimeClockEntry, error) {
	entry, err := s.timeClockRepo.GetActiveEntry(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return entry, nil
}

// ClockOutDraft captures the current session into an editable draft: the
// stored clock-in, the current time as clock-out, and a zero break.
func (s *timeClockService) ClockOutDraft(userID int64) (*ClockOutDraft, error) {
	entry, err := s.timeClockRepo.GetActiveEntry(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	hourlyRate, err := s.hourlyRateForUser(userID)
	if err != nil {
		return nil, err
	}

	return &ClockOutDraft{
		EntryID:      entry.ID,
		ClockIn:      entry.ClockIn,
		ClockOut:     s.now(),
		BreakMinutes: 0,
		HourlyRate:   hourlyRate,
	}, nil
}

// SubmitEntry validates the adjusted draft and closes the open session,
// persisting the derived hours and earnings.
func (s *timeClockService) SubmitEntry(userID int64, req SubmitTimeClockRequest) (*models.TimeClockEntry, error) {
	entry, err := s.timeClockRepo.GetActiveEntry(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	clockIn, err := parseDateTime(req.ClockIn, ErrTimeClockTimeParse)
	if err != nil {
		return nil, fmt.Errorf("clock_in: %w", err)
	}
	clockOut, err := parseDateTime(req.ClockOut, ErrTimeClockTimeParse)
	if err != nil {
		return nil, fmt.Errorf("clock_out: %w", err)
	}

	if err := ValidateAdjustment(clockIn, clockOut, req.BreakMinutes); err != nil {
		return nil, err
	}

	hourlyRate, err := s.hourlyRateForUser(userID)
	if err != nil {
		return nil, err
	}
	hours, earnings := ComputeEarnings(clockIn, clockOut, req.BreakMinutes, hourlyRate)

	entry.ClockIn = clockIn
	entry.ClockOut = &clockOut
	entry.BreakMinutes = req.BreakMinutes
	entry.Hours = hours
	entry.Earnings = earnings

	closedEntry, err := s.timeClockRepo.CloseEntry(s.db, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to close clock-in entry: %w", err)
	}
	return closedEntry, nil
}

// GetEntry returns one of the user's own entries. Entries belonging to other
// users are reported as not found rather than forbidden.
func (s *timeClockService) GetEntry(userID, entryID int64) (*models.TimeClockEntry, error) {
	entry, err := s.timeClockRepo.GetEntryByID(entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get time clock entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// GetEntries lists a user's work log, optionally bounded by clock-in time.
func (s *timeClockService) GetEntries(userID int64, from, to *time.Time) ([]models.TimeClockEntry, error) {
	entries, err := s.timeClockRepo.GetEntriesByUser(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get time clock entries: %w", err)
	}
	return entries, nil
}
