package models

import "time"

// Shift status values. Statuses are stored and compared verbatim.
const (
	ShiftStatusOpen              = "open"
	ShiftStatusAssigned          = "assigned"
	ShiftStatusRequested         = "requested"
	ShiftStatusInProgress        = "in_progress"
	ShiftStatusCompleted         = "completed"
	ShiftStatusCancelled         = "cancelled"
	ShiftStatusNoCallNoShow      = "no_call_no_show"
	ShiftStatusFacilityCancelled = "facility_cancelled"
)

// Shift urgency tiers.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// ValidShiftStatuses is the set of accepted shift status values.
var ValidShiftStatuses = map[string]bool{
	ShiftStatusOpen:              true,
	ShiftStatusAssigned:          true,
	ShiftStatusRequested:         true,
	ShiftStatusInProgress:        true,
	ShiftStatusCompleted:         true,
	ShiftStatusCancelled:         true,
	ShiftStatusNoCallNoShow:      true,
	ShiftStatusFacilityCancelled: true,
}

// ValidUrgencies is the set of accepted urgency values.
var ValidUrgencies = map[string]bool{
	UrgencyLow:      true,
	UrgencyMedium:   true,
	UrgencyHigh:     true,
	UrgencyCritical: true,
}

// Shift represents a single schedulable work assignment at a facility.
type Shift struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	FacilityID   *int64    `json:"facility_id,omitempty" db:"facility_id"`
	Department   string    `json:"department" db:"department"`
	Specialty    string    `json:"specialty" db:"specialty"`
	StartTime    time.Time `json:"start_time" db:"start_time"`
	EndTime      time.Time `json:"end_time" db:"end_time"`
	HourlyRate   float64   `json:"hourly_rate" db:"hourly_rate"`
	Status       string    `json:"status" db:"status"`
	Urgency      string    `json:"urgency" db:"urgency"`
	AssigneeID   *int64    `json:"assignee_id,omitempty" db:"assignee_id"`
	AssigneeName *string   `json:"assignee_name,omitempty" db:"assignee_name"`
	Requirements *string   `json:"requirements,omitempty" db:"requirements"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Facility     *Facility `json:"facility,omitempty"` // For joining with Facility details
}

// BlockShift is a multi-day, multi-position shift contract spanning a date range.
// Positions is the number of openings; there is no single assignee.
type BlockShift struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	FacilityID   *int64    `json:"facility_id,omitempty" db:"facility_id"`
	Department   string    `json:"department" db:"department"`
	Specialty    string    `json:"specialty" db:"specialty"`
	StartDate    string    `json:"start_date" db:"start_date"` // YYYY-MM-DD
	EndDate      string    `json:"end_date" db:"end_date"`     // YYYY-MM-DD
	ShiftTime    *string   `json:"shift_time,omitempty" db:"shift_time"` // e.g. "07:00-19:00"
	Positions    int       `json:"positions" db:"positions"`
	HourlyRate   float64   `json:"hourly_rate" db:"hourly_rate"`
	Status       string    `json:"status" db:"status"`
	Urgency      string    `json:"urgency" db:"urgency"`
	Requirements *string   `json:"requirements,omitempty" db:"requirements"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
