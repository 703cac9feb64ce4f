package scheduling

import (
	"strings"

	"medstaff_backend/internal/models"
	"medstaff_backend/pkg/utils"
)

// FilterAll is the sentinel meaning "do not narrow on this dimension".
const FilterAll = "all"

// FilterCriteria narrows a shift collection. Each field is either FilterAll
// (or empty, treated the same) or a value that must match the shift exactly.
// Search is a free-text term matched case-insensitively against title,
// department and specialty.
type FilterCriteria struct {
	FacilityID string `json:"facility_id" form:"facility_id"`
	Department string `json:"department" form:"department"`
	Specialty  string `json:"specialty" form:"specialty"`
	Status     string `json:"status" form:"status"`
	Urgency    string `json:"urgency" form:"urgency"`
	Search     string `json:"search" form:"search"`
}

func criterionMatches(criterion, value string) bool {
	if criterion == "" || criterion == FilterAll {
		return true
	}
	return criterion == value
}

// MatchShift reports whether a shift satisfies the criteria. Enum and id
// comparisons are exact and case-sensitive; the search term is a
// case-insensitive substring check over title, department and specialty.
// An absent facility never matches a concrete facility criterion.
func MatchShift(shift models.Shift, criteria FilterCriteria) bool {
	facilityID := ""
	if shift.FacilityID != nil {
		facilityID = utils.Int64ToStr(*shift.FacilityID)
	}
	if !criterionMatches(criteria.FacilityID, facilityID) {
		return false
	}
	if !criterionMatches(criteria.Department, shift.Department) {
		return false
	}
	if !criterionMatches(criteria.Specialty, shift.Specialty) {
		return false
	}
	if !criterionMatches(criteria.Status, shift.Status) {
		return false
	}
	if !criterionMatches(criteria.Urgency, shift.Urgency) {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(criteria.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{shift.Title, shift.Department, shift.Specialty} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterShifts returns the shifts matching the criteria, preserving input
// order. The result is always non-nil so it serializes as a JSON array.
func FilterShifts(shifts []models.Shift, criteria FilterCriteria) []models.Shift {
	filtered := []models.Shift{}
	for _, shift := range shifts {
		if MatchShift(shift, criteria) {
			filtered = append(filtered, shift)
		}
	}
	return filtered
}
