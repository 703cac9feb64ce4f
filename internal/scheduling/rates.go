package scheduling

import (
	"errors"
	"math"
)

// Premium multiplier bounds for posted shifts. The slider on the posting form
// moves in 0.05 steps between 1.0x and 1.7x.
const (
	MinMultiplier  = 1.0
	MaxMultiplier  = 1.7
	MultiplierStep = 0.05
)

// ErrUnknownSpecialty is returned when no base rate exists for a specialty.
var ErrUnknownSpecialty = errors.New("no base rate configured for specialty")

// baseRates is the fixed per-specialty base hourly rate table (USD).
var baseRates = map[string]float64{
	"Registered Nurse":            48,
	"Licensed Practical Nurse":    35,
	"Certified Nursing Assistant": 28,
	"Respiratory Therapist":       44,
	"Physical Therapist":          52,
	"Occupational Therapist":      50,
	"Medical Technician":          32,
	"Surgical Technician":         38,
}

// BaseRate looks up the base hourly rate for a specialty.
func BaseRate(specialty string) (float64, bool) {
	rate, ok := baseRates[specialty]
	return rate, ok
}

// Specialties returns the specialties with a configured base rate.
func Specialties() []string {
	names := make([]string, 0, len(baseRates))
	for name := range baseRates {
		names = append(names, name)
	}
	return names
}

// ClampMultiplier snaps a multiplier into [MinMultiplier, MaxMultiplier] on
// the 0.05 grid.
func ClampMultiplier(multiplier float64) float64 {
	if multiplier < MinMultiplier {
		return MinMultiplier
	}
	if multiplier > MaxMultiplier {
		return MaxMultiplier
	}
	steps := math.Round((multiplier - MinMultiplier) / MultiplierStep)
	// Round to cents so accumulated float error cannot push the result off the
	// grid or past MaxMultiplier.
	return math.Round((MinMultiplier+steps*MultiplierStep)*100) / 100
}

// PremiumRate computes the offered hourly rate for a posted shift:
// round(baseRate[specialty] * multiplier), with the multiplier clamped to the
// slider's domain.
func PremiumRate(specialty string, multiplier float64) (float64, error) {
	base, ok := BaseRate(specialty)
	if !ok {
		return 0, ErrUnknownSpecialty
	}
	return math.Round(base * ClampMultiplier(multiplier)), nil
}
