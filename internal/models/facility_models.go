package models

import "time"

// Facility represents a healthcare facility that posts shifts.
type Facility struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	FacilityType *string   `json:"facility_type,omitempty" db:"facility_type"` // e.g. hospital, snf, clinic
	Address      *string   `json:"address,omitempty" db:"address"`
	City         *string   `json:"city,omitempty" db:"city"`
	State        *string   `json:"state,omitempty" db:"state"`
	PhoneNumber  *string   `json:"phone_number,omitempty" db:"phone_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
