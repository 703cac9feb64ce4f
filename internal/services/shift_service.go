package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
	"medstaff_backend/internal/scheduling"
	"medstaff_backend/pkg/utils"
)

// --- Custom Service Errors for Shifts ---
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrBlockShiftNotFound = errors.New("block shift not found")
	ErrShiftValidation    = errors.New("shift validation error")
	ErrShiftTimeFormat    = errors.New("invalid time format for shift, please use RFC3339 like format")
	ErrShiftDateFormat    = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrUnknownShiftStatus = errors.New("unknown shift status")
	ErrUnknownUrgency     = errors.New("unknown urgency level")
	ErrUnknownSpecialty   = scheduling.ErrUnknownSpecialty
)

// maxShiftDuration bounds a single shift's scheduled window.
const maxShiftDuration = 24 * time.Hour

// --- Shift DTOs ---

// CreateShiftRequest posts a new shift. When PremiumMultiplier is set the
// hourly rate is derived from the specialty base-rate table; an explicit
// HourlyRate wins when both are present.
type CreateShiftRequest struct {
	Title             string   `json:"title" binding:"required"`
	FacilityID        *int64   `json:"facility_id"`
	Department        string   `json:"department" binding:"required"`
	Specialty         string   `json:"specialty" binding:"required"`
	StartTime         string   `json:"start_time" binding:"required"`
	EndTime           string   `json:"end_time" binding:"required"`
	HourlyRate        *float64 `json:"hourly_rate"`
	PremiumMultiplier *float64 `json:"premium_multiplier"`
	Urgency           string   `json:"urgency"`
	Requirements      *string  `json:"requirements"`
	Notes             *string  `json:"notes"`
}

type UpdateShiftRequest struct {
	Title        *string  `json:"title"`
	Department   *string  `json:"department"`
	Specialty    *string  `json:"specialty"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Status       *string  `json:"status"`
	Urgency      *string  `json:"urgency"`
	AssigneeID   *int64   `json:"assignee_id"`
	AssigneeName *string  `json:"assignee_name"`
	Requirements *string  `json:"requirements"`
	Notes        *string  `json:"notes"`
}

type CreateBlockShiftRequest struct {
	Title        string   `json:"title" binding:"required"`
	FacilityID   *int64   `json:"facility_id"`
	Department   string   `json:"department" binding:"required"`
	Specialty    string   `json:"specialty" binding:"required"`
	StartDate    string   `json:"start_date" binding:"required"`
	EndDate      string   `json:"end_date" binding:"required"`
	ShiftTime    *string  `json:"shift_time"`
	Positions    int      `json:"positions" binding:"required"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Urgency      string   `json:"urgency"`
	Requirements *string  `json:"requirements"`
	Notes        *string  `json:"notes"`
}

// CalendarView is one week of day-binned, filtered shifts.
type CalendarView struct {
	WeekStart string                    `json:"week_start"`
	Days      []string                  `json:"days"`
	Shifts    map[string][]models.Shift `json:"shifts"`
}

// --- ShiftService Interface ---
type ShiftService interface {
	CreateShift(req CreateShiftRequest) (*models.Shift, error)
	GetShiftByID(shiftID int64) (*models.Shift, error)
	GetShifts(criteria scheduling.FilterCriteria) ([]models.Shift, error)
	GetFacilityShifts(facilityID int64, criteria scheduling.FilterCriteria) ([]models.Shift, error)
	GetCalendar(anchorStr string, criteria scheduling.FilterCriteria) (*CalendarView, error)
	UpdateShift(shiftID int64, req UpdateShiftRequest) (*models.Shift, error)
	DeleteShift(shiftID int64) error

	CreateBlockShift(req CreateBlockShiftRequest) (*models.BlockShift, error)
	GetBlockShiftByID(blockID int64) (*models.BlockShift, error)
	GetBlockShifts(facilityID *int64) ([]models.BlockShift, error)
}

// --- shiftService Implementation ---
type shiftService struct {
	shiftRepo    repositories.ShiftRepository
	facilityRepo repositories.FacilityRepository
	db           *sql.DB
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(sr repositories.ShiftRepository, fr repositories.FacilityRepository, db *sql.DB) ShiftService {
	return &shiftService{
		shiftRepo:    sr,
		facilityRepo: fr,
		db:           db,
	}
}

func parseDateTime(dateTimeStr string, errorToReturn error) (time.Time, error) {
	parsedTime, err := time.Parse(time.RFC3339, dateTimeStr)
	if err != nil {
		// Try parsing without timezone if RFC3339 fails (common if client sends local time string)
		parsedTime, err = time.Parse("2006-01-02T15:04:05", dateTimeStr)
		if err != nil {
			return time.Time{}, errorToReturn
		}
	}
	return parsedTime, nil
}

func parseDate(dateStr string, errorToReturn error) (time.Time, error) {
	parsed, err := time.Parse(scheduling.DayKeyFormat, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, errorToReturn
	}
	return parsed, nil
}

func validateShiftWindow(startTime, endTime time.Time) error {
	if !endTime.After(startTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrShiftValidation)
	}
	if endTime.Sub(startTime) > maxShiftDuration {
		return fmt.Errorf("%w: shift duration cannot exceed 24 hours", ErrShiftValidation)
	}
	return nil
}

func normalizeUrgency(urgency string) (string, error) {
	if urgency == "" {
		return models.UrgencyMedium, nil
	}
	if !models.ValidUrgencies[urgency] {
		return "", fmt.Errorf("%w: %s", ErrUnknownUrgency, urgency)
	}
	return urgency, nil
}

// --- Shift Method Implementations ---

func (s *shiftService) CreateShift(req CreateShiftRequest) (*models.Shift, error) {
	startTime, err := parseDateTime(req.StartTime, ErrShiftTimeFormat)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	endTime, err := parseDateTime(req.EndTime, ErrShiftTimeFormat)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if err := validateShiftWindow(startTime, endTime); err != nil {
		return nil, err
	}

	urgency, err := normalizeUrgency(req.Urgency)
	if err != nil {
		return nil, err
	}

	var hourlyRate float64
	switch {
	case req.HourlyRate != nil:
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrShiftValidation)
		}
		hourlyRate = *req.HourlyRate
	case req.PremiumMultiplier != nil:
		hourlyRate, err = scheduling.PremiumRate(req.Specialty, *req.PremiumMultiplier)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrShiftValidation, err.Error())
		}
	default:
		return nil, fmt.Errorf("%w: either hourly_rate or premium_multiplier is required", ErrShiftValidation)
	}

	if req.FacilityID != nil {
		if _, err := s.facilityRepo.GetFacilityByID(*req.FacilityID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: facility %d", ErrFacilityNotFound, *req.FacilityID)
			}
			return nil, fmt.Errorf("failed to validate facility for shift: %w", err)
		}
	}

	shift := &models.Shift{
		Title:        req.Title,
		FacilityID:   req.FacilityID,
		Department:   req.Department,
		Specialty:    req.Specialty,
		StartTime:    startTime,
		EndTime:      endTime,
		HourlyRate:   hourlyRate,
		Status:       models.ShiftStatusOpen,
		Urgency:      urgency,
		Requirements: req.Requirements,
		Notes:        req.Notes,
	}

	createdShift, err := s.shiftRepo.CreateShift(s.db, shift)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift in repository: %w", err)
	}
	return createdShift, nil
}

// GetShiftByID returns a single shift with its facility details attached when
// the shift is tied to a facility.
func (s *shiftService) GetShiftByID(shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	if shift.FacilityID != nil {
		facility, facErr := s.facilityRepo.GetFacilityByID(*shift.FacilityID)
		switch {
		case facErr == nil:
			shift.Facility = facility
		case !errors.Is(facErr, repositories.ErrNotFound):
			return nil, fmt.Errorf("failed to load facility for shift %d: %w", shiftID, facErr)
		}
	}
	return shift, nil
}

// GetShifts returns all shifts narrowed by the derived-view criteria. The
// facility and status dimensions are pushed down to the repository; the rest
// is applied by the scheduling filter.
func (s *shiftService) GetShifts(criteria scheduling.FilterCriteria) ([]models.Shift, error) {
	var dbFilter repositories.ShiftFilter
	if criteria.FacilityID != "" && criteria.FacilityID != scheduling.FilterAll {
		facilityID, err := utils.StrToInt64(criteria.FacilityID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid facility_id %q", ErrShiftValidation, criteria.FacilityID)
		}
		dbFilter.FacilityID = &facilityID
	}
	if criteria.Status != "" && criteria.Status != scheduling.FilterAll {
		if !models.ValidShiftStatuses[criteria.Status] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownShiftStatus, criteria.Status)
		}
		dbFilter.Status = &criteria.Status
	}

	shifts, err := s.shiftRepo.GetShifts(dbFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	return scheduling.FilterShifts(shifts, criteria), nil
}

func (s *shiftService) GetFacilityShifts(facilityID int64, criteria scheduling.FilterCriteria) ([]models.Shift, error) {
	criteria.FacilityID = utils.Int64ToStr(facilityID)
	return s.GetShifts(criteria)
}

// GetCalendar builds the 7-day window containing the anchor date and bins the
// filtered shifts into it. Shifts outside the window are simply not included.
func (s *shiftService) GetCalendar(anchorStr string, criteria scheduling.FilterCriteria) (*CalendarView, error) {
	anchor := time.Now()
	if strings.TrimSpace(anchorStr) != "" {
		parsed, err := parseDate(anchorStr, ErrShiftDateFormat)
		if err != nil {
			return nil, fmt.Errorf("anchor: %w", err)
		}
		anchor = parsed
	}

	weekStart := scheduling.WeekStart(anchor)
	weekEnd := weekStart.AddDate(0, 0, scheduling.DaysPerWeek)

	dbFilter := repositories.ShiftFilter{From: &weekStart, To: &weekEnd}
	if criteria.FacilityID != "" && criteria.FacilityID != scheduling.FilterAll {
		facilityID, err := utils.StrToInt64(criteria.FacilityID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid facility_id %q", ErrShiftValidation, criteria.FacilityID)
		}
		dbFilter.FacilityID = &facilityID
	}

	shifts, err := s.shiftRepo.GetShifts(dbFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts for calendar: %w", err)
	}

	filtered := scheduling.FilterShifts(shifts, criteria)
	bins := scheduling.BinByDay(filtered)
	days := scheduling.WeekWindow(anchor)

	// Only the window's day keys are exposed; every key is present even when
	// its bin is empty, so clients can render the full week.
	windowShifts := make(map[string][]models.Shift, len(days))
	for _, day := range days {
		if bin, ok := bins[day]; ok {
			windowShifts[day] = bin
		} else {
			windowShifts[day] = []models.Shift{}
		}
	}

	return &CalendarView{
		WeekStart: scheduling.DayKey(weekStart),
		Days:      days,
		Shifts:    windowShifts,
	}, nil
}

func (s *shiftService) UpdateShift(shiftID int64, req UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift for update: %w", err)
	}

	newStartTime := shift.StartTime
	newEndTime := shift.EndTime
	if req.StartTime != nil {
		st, parseErr := parseDateTime(*req.StartTime, ErrShiftTimeFormat)
		if parseErr != nil {
			return nil, fmt.Errorf("start_time: %w", parseErr)
		}
		newStartTime = st
	}
	if req.EndTime != nil {
		et, parseErr := parseDateTime(*req.EndTime, ErrShiftTimeFormat)
		if parseErr != nil {
			return nil, fmt.Errorf("end_time: %w", parseErr)
		}
		newEndTime = et
	}
	if err := validateShiftWindow(newStartTime, newEndTime); err != nil {
		return nil, err
	}
	shift.StartTime = newStartTime
	shift.EndTime = newEndTime

	if req.Title != nil {
		shift.Title = *req.Title
	}
	if req.Department != nil {
		shift.Department = *req.Department
	}
	if req.Specialty != nil {
		shift.Specialty = *req.Specialty
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrShiftValidation)
		}
		shift.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		if !models.ValidShiftStatuses[*req.Status] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownShiftStatus, *req.Status)
		}
		shift.Status = *req.Status
	}
	if req.Urgency != nil {
		urgency, urgErr := normalizeUrgency(*req.Urgency)
		if urgErr != nil {
			return nil, urgErr
		}
		shift.Urgency = urgency
	}
	if req.AssigneeID != nil {
		shift.AssigneeID = req.AssigneeID
	}
	if req.AssigneeName != nil {
		shift.AssigneeName = req.AssigneeName
	}
	if req.Requirements != nil {
		shift.Requirements = req.Requirements
	}
	if req.Notes != nil {
		shift.Notes = req.Notes
	}

	updatedShift, err := s.shiftRepo.UpdateShift(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to update shift in repository: %w", err)
	}
	return updatedShift, nil
}

func (s *shiftService) DeleteShift(shiftID int64) error {
	err := s.shiftRepo.DeleteShift(s.db, shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// --- BlockShift Method Implementations ---

func (s *shiftService) CreateBlockShift(req CreateBlockShiftRequest) (*models.BlockShift, error) {
	startDate, err := parseDate(req.StartDate, ErrShiftDateFormat)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	endDate, err := parseDate(req.EndDate, ErrShiftDateFormat)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrShiftValidation)
	}
	if req.Positions <= 0 {
		return nil, fmt.Errorf("%w: positions must be positive", ErrShiftValidation)
	}

	urgency, err := normalizeUrgency(req.Urgency)
	if err != nil {
		return nil, err
	}

	var hourlyRate float64
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrShiftValidation)
		}
		hourlyRate = *req.HourlyRate
	} else {
		base, ok := scheduling.BaseRate(req.Specialty)
		if !ok {
			return nil, fmt.Errorf("%w: either hourly_rate is required or specialty must have a base rate", ErrShiftValidation)
		}
		hourlyRate = base
	}

	if req.FacilityID != nil {
		if _, err := s.facilityRepo.GetFacilityByID(*req.FacilityID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: facility %d", ErrFacilityNotFound, *req.FacilityID)
			}
			return nil, fmt.Errorf("failed to validate facility for block shift: %w", err)
		}
	}

	block := &models.BlockShift{
		Title:        req.Title,
		FacilityID:   req.FacilityID,
		Department:   req.Department,
		Specialty:    req.Specialty,
		StartDate:    scheduling.DayKey(startDate),
		EndDate:      scheduling.DayKey(endDate),
		ShiftTime:    req.ShiftTime,
		Positions:    req.Positions,
		HourlyRate:   hourlyRate,
		Status:       models.ShiftStatusOpen,
		Urgency:      urgency,
		Requirements: req.Requirements,
		Notes:        req.Notes,
	}

	createdBlock, err := s.shiftRepo.CreateBlockShift(s.db, block)
	if err != nil {
		return nil, fmt.Errorf("failed to create block shift in repository: %w", err)
	}
	return createdBlock, nil
}

func (s *shiftService) GetBlockShiftByID(blockID int64) (*models.BlockShift, error) {
	block, err := s.shiftRepo.GetBlockShiftByID(blockID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlockShiftNotFound
		}
		return nil, fmt.Errorf("failed to get block shift by ID: %w", err)
	}
	return block, nil
}

func (s *shiftService) GetBlockShifts(facilityID *int64) ([]models.BlockShift, error) {
	blocks, err := s.shiftRepo.GetBlockShifts(facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get block shifts: %w", err)
	}
	return blocks, nil
}
