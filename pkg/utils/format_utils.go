package utils

import (
	"fmt"
	"strings"
)

// Display formatting helpers. Optional staff fields are null-coalesced here
// in one place instead of at every call site.

// CoalesceString returns the pointed-to string, or the fallback when the
// pointer is nil or the value is blank.
func CoalesceString(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}

// DisplayName joins first and last name, falling back to "Unknown" when both
// are blank.
func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return "Unknown"
	}
	return name
}

// FormatHourlyRate renders a rate as e.g. "$48.00/hr".
func FormatHourlyRate(rate float64) string {
	return fmt.Sprintf("$%.2f/hr", rate)
}

// FormatHours renders a fractional hour count as e.g. "7.50 hrs".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f hrs", hours)
}
