package handlers

import (
	"errors"
	"net/http"
	"time"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/services"
	"medstaff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TimeClockHandler holds the time clock service.
type TimeClockHandler struct {
	timeClockService services.TimeClockService
}

// NewTimeClockHandler creates a new TimeClockHandler.
func NewTimeClockHandler(ts services.TimeClockService) *TimeClockHandler {
	return &TimeClockHandler{timeClockService: ts}
}

// currentUserID pulls the authenticated user's id from the gin context set by
// the auth middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", ""))
		return 0, false
	}
	userID, ok := userIDValue.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Invalid user ID in context.", ""))
		return 0, false
	}
	return userID, true
}

func respondTimeClockError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrAlreadyClockedIn):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "You already have an open clock-in session.", ""))
	case errors.Is(err, services.ErrNotClockedIn):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "No open clock-in session.", ""))
	case errors.Is(err, services.ErrStaffNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No staff profile linked to this user.", ""))
	case errors.Is(err, services.ErrClockOutBeforeIn),
		errors.Is(err, services.ErrSessionTooLong),
		errors.Is(err, services.ErrNegativeBreak),
		errors.Is(err, services.ErrBreakExceedsShift),
		errors.Is(err, services.ErrTimeClockTimeParse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, context)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", "Internal error"))
	}
}

// ClockIn opens a work session for the authenticated user.
func (h *TimeClockHandler) ClockIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := h.timeClockService.ClockIn(userID)
	if err != nil {
		respondTimeClockError(c, err, "ClockIn: Error from timeClockService.ClockIn")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetActiveEntry returns the user's open session, if any.
func (h *TimeClockHandler) GetActiveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := h.timeClockService.ActiveEntry(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No open clock-in session.", ""))
			return
		}
		respondTimeClockError(c, err, "GetActiveEntry: Error from timeClockService.ActiveEntry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ClockOutDraft returns the editable first phase of clocking out: captured
// session times with a zero break, which the worker adjusts before submitting.
func (h *TimeClockHandler) ClockOutDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.timeClockService.ClockOutDraft(userID)
	if err != nil {
		respondTimeClockError(c, err, "ClockOutDraft: Error from timeClockService.ClockOutDraft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SubmitEntry closes the open session with the possibly-adjusted times and
// break, persisting derived hours and earnings.
func (h *TimeClockHandler) SubmitEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitTimeClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.timeClockService.SubmitEntry(userID, req)
	if err != nil {
		respondTimeClockError(c, err, "SubmitEntry: Error from timeClockService.SubmitEntry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetEntry returns one of the authenticated user's own entries.
func (h *TimeClockHandler) GetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid entry ID format.", err.Error()))
		return
	}

	entry, err := h.timeClockService.GetEntry(userID, entryID)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Time clock entry not found.", ""))
			return
		}
		respondTimeClockError(c, err, "GetEntry: Error from timeClockService.GetEntry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetEntries lists the user's work log, optionally bounded by ?from and ?to
// dates.
func (h *TimeClockHandler) GetEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid 'from' date, expected YYYY-MM-DD.", err.Error()))
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid 'to' date, expected YYYY-MM-DD.", err.Error()))
			return
		}
		to = &parsed
	}

	entries, err := h.timeClockService.GetEntries(userID, from, to)
	if err != nil {
		respondTimeClockError(c, err, "GetEntries: Error from timeClockService.GetEntries")
		return
	}
	if entries == nil {
		entries = []models.TimeClockEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
