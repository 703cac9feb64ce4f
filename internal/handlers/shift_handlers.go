package handlers

import (
	"errors"
	"net/http"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/scheduling"
	"medstaff_backend/internal/services"
	"medstaff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

func respondShiftError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrShiftNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
	case errors.Is(err, services.ErrBlockShiftNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Block shift not found.", err.Error()))
	case errors.Is(err, services.ErrFacilityNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrShiftValidation),
		errors.Is(err, services.ErrShiftTimeFormat),
		errors.Is(err, services.ErrShiftDateFormat),
		errors.Is(err, services.ErrUnknownShiftStatus),
		errors.Is(err, services.ErrUnknownUrgency),
		errors.Is(err, services.ErrUnknownSpecialty):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, context)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", "Internal error"))
	}
}

// CreateShift handles posting a new shift, optionally at a premium rate.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req services.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateShift: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.shiftService.CreateShift(req)
	if err != nil {
		respondShiftError(c, err, "CreateShift: Error from shiftService.CreateShift")
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetShifts handles fetching shifts narrowed by the board's filter criteria.
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	var criteria scheduling.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filter parameters: "+err.Error(), err.Error()))
		return
	}

	shifts, err := h.shiftService.GetShifts(criteria)
	if err != nil {
		respondShiftError(c, err, "GetShifts: Error from shiftService.GetShifts")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GetShiftByID handles fetching a single shift.
func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	shift, err := h.shiftService.GetShiftByID(shiftID)
	if err != nil {
		respondShiftError(c, err, "GetShiftByID: Error from shiftService.GetShiftByID")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// GetCalendar handles the week calendar view: seven day bins anchored on the
// optional ?anchor=YYYY-MM-DD date, honoring the same filter criteria as the
// shift board.
func (h *ShiftHandler) GetCalendar(c *gin.Context) {
	var criteria scheduling.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filter parameters: "+err.Error(), err.Error()))
		return
	}

	view, err := h.shiftService.GetCalendar(c.Query("anchor"), criteria)
	if err != nil {
		respondShiftError(c, err, "GetCalendar: Error from shiftService.GetCalendar")
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateShift handles patching a shift, including status transitions and
// assignment.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	var req services.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateShift: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.shiftService.UpdateShift(shiftID, req)
	if err != nil {
		respondShiftError(c, err, "UpdateShift: Error from shiftService.UpdateShift")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift handles removing a shift.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	if err := h.shiftService.DeleteShift(shiftID); err != nil {
		respondShiftError(c, err, "DeleteShift: Error from shiftService.DeleteShift")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully"})
}

// GetFacilityShifts handles fetching a single facility's shifts. The facility
// is named by a required ?facility_id query parameter.
func (h *ShiftHandler) GetFacilityShifts(c *gin.Context) {
	facilityID, err := utils.StrToInt64(c.Query("facility_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "A numeric facility_id query parameter is required.", err.Error()))
		return
	}

	var criteria scheduling.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filter parameters: "+err.Error(), err.Error()))
		return
	}

	shifts, err := h.shiftService.GetFacilityShifts(facilityID, criteria)
	if err != nil {
		respondShiftError(c, err, "GetFacilityShifts: Error from shiftService.GetFacilityShifts")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// --- Block Shift Handler Methods ---

// CreateBlockShift handles posting a multi-day block of shifts.
func (h *ShiftHandler) CreateBlockShift(c *gin.Context) {
	var req services.CreateBlockShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateBlockShift: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	block, err := h.shiftService.CreateBlockShift(req)
	if err != nil {
		respondShiftError(c, err, "CreateBlockShift: Error from shiftService.CreateBlockShift")
		return
	}
	c.JSON(http.StatusCreated, block)
}

// GetBlockShiftByID handles fetching a single block shift.
func (h *ShiftHandler) GetBlockShiftByID(c *gin.Context) {
	blockID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid block shift ID format.", err.Error()))
		return
	}

	block, err := h.shiftService.GetBlockShiftByID(blockID)
	if err != nil {
		respondShiftError(c, err, "GetBlockShiftByID: Error from shiftService.GetBlockShiftByID")
		return
	}
	c.JSON(http.StatusOK, block)
}

// GetBlockShifts handles fetching block shifts, optionally for one facility.
func (h *ShiftHandler) GetBlockShifts(c *gin.Context) {
	var facilityID *int64
	if raw := c.Query("facility_id"); raw != "" && raw != scheduling.FilterAll {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility_id format.", err.Error()))
			return
		}
		facilityID = &id
	}

	blocks, err := h.shiftService.GetBlockShifts(facilityID)
	if err != nil {
		respondShiftError(c, err, "GetBlockShifts: Error from shiftService.GetBlockShifts")
		return
	}
	if blocks == nil {
		blocks = []models.BlockShift{}
	}
	c.JSON(http.StatusOK, blocks)
}
