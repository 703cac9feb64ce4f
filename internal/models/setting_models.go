package models

import "time"

// SystemSettings is the singleton settings object for the deployment.
// Overtime fields are stored here but deliberately not consumed by the
// time-clock earnings calculation; payroll applies them downstream.
type SystemSettings struct {
	ID                     int64     `json:"id" db:"id"`
	OrganizationName       string    `json:"organization_name" db:"organization_name"`
	Timezone               string    `json:"timezone" db:"timezone"`
	OvertimeThresholdHours float64   `json:"overtime_threshold_hours" db:"overtime_threshold_hours"`
	OvertimeMultiplier     float64   `json:"overtime_multiplier" db:"overtime_multiplier"`
	AllowSelfScheduling    bool      `json:"allow_self_scheduling" db:"allow_self_scheduling"`
	DefaultShiftHours      float64   `json:"default_shift_hours" db:"default_shift_hours"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}
