package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/services"
	"medstaff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxProfileImageSize caps profile image uploads at 5 MiB.
const maxProfileImageSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// StaffHandler holds the staff service and the upload directory for profile
// images.
type StaffHandler struct {
	staffService services.StaffService
	uploadDir    string
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService, uploadDir string) *StaffHandler {
	return &StaffHandler{staffService: ss, uploadDir: uploadDir}
}

// --- StaffMember Handler Methods ---

// CreateStaffMember handles the creation of a new staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStaffMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staffMember, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		utils.LogError(err, "CreateStaffMember: Error from staffService.CreateStaffMember")
		if errors.Is(err, services.ErrStaffDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, staffMember)
}

// GetStaffMembers handles fetching the staff directory with optional search
// and specialty narrowing.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	var pSearchTerm, pSpecialty *string
	if searchTerm := c.Query("search"); searchTerm != "" {
		pSearchTerm = &searchTerm
	}
	if specialty := c.Query("specialty"); specialty != "" {
		pSpecialty = &specialty
	}

	staffMembers, err := h.staffService.GetStaffMembers(pSearchTerm, pSpecialty)
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff members.", "Internal error"))
		return
	}

	if staffMembers == nil {
		staffMembers = []models.StaffMember{}
	}
	c.JSON(http.StatusOK, staffMembers)
}

// GetStaffMemberByID handles fetching a single staff member by ID.
func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}

	staffMember, err := h.staffService.GetStaffMemberByID(staffID)
	if err != nil {
		utils.LogError(err, "GetStaffMemberByID: Error from staffService.GetStaffMemberByID")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staffMember)
}

// UpdateStaffMember handles patching a staff member.
func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}

	var req services.UpdateStaffMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateStaffMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staffMember, err := h.staffService.UpdateStaffMember(staffID, req)
	if err != nil {
		utils.LogError(err, "UpdateStaffMember: Error from staffService.UpdateStaffMember")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrStaffDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staffMember)
}

// UploadProfileImage handles the multipart profile-image upload. The file is
// stored under a uuid name and the staff record points at its public path.
func (h *StaffHandler) UploadProfileImage(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Missing 'image' file in multipart form.", err.Error()))
		return
	}
	if file.Size > maxProfileImageSize {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Profile image exceeds the 5MB limit.", ""))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unsupported image type. Use jpg, png or webp.", ""))
		return
	}

	fileName := uuid.NewString() + ext
	destination := filepath.Join(h.uploadDir, fileName)
	if err := c.SaveUploadedFile(file, destination); err != nil {
		utils.LogError(err, "UploadProfileImage: Failed to save uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store profile image.", "Internal error"))
		return
	}

	staffMember, err := h.staffService.SetProfileImage(staffID, "/uploads/"+fileName)
	if err != nil {
		utils.LogError(err, "UploadProfileImage: Error from staffService.SetProfileImage")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update profile image.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staffMember)
}

// BulkEditStaff applies one field/value change to a list of staff members.
func (h *StaffHandler) BulkEditStaff(c *gin.Context) {
	var req services.BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "BulkEditStaff: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updated, err := h.staffService.BulkEdit(req)
	if err != nil {
		utils.LogError(err, "BulkEditStaff: Error from staffService.BulkEdit")
		if errors.Is(err, services.ErrBulkEditField) || errors.Is(err, services.ErrStaffDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to bulk edit staff.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// --- Facility Assignment Handler Methods ---

// AssignFacility links a staff member to a facility and returns the updated
// assignment list.
func (h *StaffHandler) AssignFacility(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}

	var req struct {
		FacilityID int64 `json:"facility_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	facilities, err := h.staffService.AssignFacility(staffID, req.FacilityID)
	if err != nil {
		utils.LogError(err, "AssignFacility: Error from staffService.AssignFacility")
		if errors.Is(err, services.ErrStaffNotFound) || errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		} else if errors.Is(err, services.ErrFacilityAlreadySet) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff member is already assigned to this facility.", ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to assign facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// UnassignFacility removes a staff member's facility assignment.
func (h *StaffHandler) UnassignFacility(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}
	facilityID, err := utils.StrToInt64(c.Param("facilityId"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid facility ID format.", err.Error()))
		return
	}

	if err := h.staffService.UnassignFacility(staffID, facilityID); err != nil {
		utils.LogError(err, "UnassignFacility: Error from staffService.UnassignFacility")
		if errors.Is(err, services.ErrFacilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Facility assignment not found.", ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to unassign facility.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Facility assignment removed"})
}

// --- Staff Feed Handler Methods ---

// GetPosts returns the staff feed.
func (h *StaffHandler) GetPosts(c *gin.Context) {
	posts, err := h.staffService.GetPosts()
	if err != nil {
		utils.LogError(err, "GetPosts: Error from staffService.GetPosts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff posts.", "Internal error"))
		return
	}
	if posts == nil {
		posts = []models.StaffPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost publishes a new post on the staff feed.
func (h *StaffHandler) CreatePost(c *gin.Context) {
	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	post, err := h.staffService.CreatePost(req)
	if err != nil {
		utils.LogError(err, "CreatePost: Error from staffService.CreatePost")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Post author not found.", err.Error()))
		} else if errors.Is(err, services.ErrPostValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff post.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, post)
}

// LikePost increments a post's like counter.
func (h *StaffHandler) LikePost(c *gin.Context) {
	postID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid post ID format.", err.Error()))
		return
	}

	post, err := h.staffService.LikePost(postID)
	if err != nil {
		utils.LogError(err, "LikePost: Error from staffService.LikePost")
		if errors.Is(err, services.ErrPostNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff post not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to like staff post.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, post)
}
