package models

import "time"

// TimeClockEntry is a single clock-in/clock-out session for a worker.
// An entry with a nil ClockOut is the worker's active session; the repository
// enforces at most one active entry per user.
// Hours and Earnings are computed at submission from the adjusted times and
// break, not re-derived on read.
type TimeClockEntry struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	ClockIn        time.Time  `json:"clock_in" db:"clock_in"`
	ClockOut       *time.Time `json:"clock_out,omitempty" db:"clock_out"`
	BreakMinutes   int        `json:"break_minutes" db:"break_minutes"`
	Hours          float64    `json:"hours" db:"hours"`
	Earnings       float64    `json:"earnings" db:"earnings"`
	SupervisorID   *int64     `json:"supervisor_id,omitempty" db:"supervisor_id"`
	SupervisorNote *string    `json:"supervisor_note,omitempty" db:"supervisor_note"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
