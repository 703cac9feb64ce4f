package handlers

import (
	"errors"
	"net/http"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/services"
	"medstaff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FacilityHandler holds the facility service.
type FacilityHandler struct {
	facilityService services.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(fs services.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilityService: fs}
}

// CreateFacility handles creating a facility.
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req services.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	facility, err := h.facilityService.CreateFacility(req)
	if err != nil {
		utils.LogError(err, "CreateFacility: Error from facilityService.CreateFacility")
		if errors.Is(err, services.ErrFacilityDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, facility)
}

// GetFacilities handles fetching all facilities.
func (h *FacilityHandler) GetFacilities(c *gin.Context) {
	facilities, err := h.facilityService.GetFacilities()
	if err != nil {
		utils.LogError(err, "GetFacilities: Error from facilityService.GetFacilities")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch facilities.", "Internal error"))
		return
	}
	if facilities == nil {
		facilities = []models.Facility{}
	}
	c.JSON(http.StatusOK, facilities)
}

// GetFacilityByID handles fetching a single facility.
func (h *FacilityHandler) GetFacilityByID(c *gin.Context) {
	facilityID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	facility, err := h.facilityService.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility not found.", ""))
		} else {
			utils.LogError(err, "GetFacilityByID: Error from facilityService.GetFacilityByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, facility)
}

// UpdateFacility handles patching a facility.
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	facilityID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	var req services.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	facility, err := h.facilityService.UpdateFacility(facilityID, req)
	if err != nil {
		utils.LogError(err, "UpdateFacility: Error from facilityService.UpdateFacility")
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility not found to update.", ""))
		} else if errors.Is(err, services.ErrFacilityDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, facility)
}
