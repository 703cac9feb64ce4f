package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
	"medstaff_backend/pkg/utils"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrStaffDataValidation = errors.New("staff data validation error")
	ErrFacilityNotFound    = errors.New("facility not found")
	ErrFacilityAlreadySet  = errors.New("staff member is already assigned to this facility")
	ErrBulkEditField       = errors.New("field is not editable in bulk")
	ErrPostNotFound        = errors.New("staff post not found")
	ErrPostValidation      = errors.New("post validation error")
)

// --- StaffMember DTOs ---
type CreateStaffMemberRequest struct {
	UserID         *int64          `json:"user_id"`
	FirstName      string          `json:"first_name" binding:"required"`
	LastName       string          `json:"last_name" binding:"required"`
	Email          *string         `json:"email"`
	PhoneNumber    *string         `json:"phone_number"`
	Specialty      string          `json:"specialty" binding:"required"`
	WorkerType     *string         `json:"worker_type"`
	EmploymentType *string         `json:"employment_type"`
	HourlyRate     *float64        `json:"hourly_rate"`
	Certifications json.RawMessage `json:"certifications"`
	Skills         json.RawMessage `json:"skills"`
	WorkHistory    json.RawMessage `json:"work_history"`
	Education      json.RawMessage `json:"education"`
}

type UpdateStaffMemberRequest struct {
	FirstName      *string         `json:"first_name"`
	LastName       *string         `json:"last_name"`
	Email          *string         `json:"email"`
	PhoneNumber    *string         `json:"phone_number"`
	Specialty      *string         `json:"specialty"`
	WorkerType     *string         `json:"worker_type"`
	EmploymentType *string         `json:"employment_type"`
	HourlyRate     *float64        `json:"hourly_rate"`
	IsActive       *bool           `json:"is_active"`
	Certifications json.RawMessage `json:"certifications"`
	Skills         json.RawMessage `json:"skills"`
	WorkHistory    json.RawMessage `json:"work_history"`
	Education      json.RawMessage `json:"education"`
	Documents      json.RawMessage `json:"documents"`
}

// BulkEditRequest applies one field/value pair to a set of staff members.
type BulkEditRequest struct {
	StaffIDs []int64     `json:"staff_ids" binding:"required"`
	Field    string      `json:"field" binding:"required"`
	Value    interface{} `json:"value"`
}

// CreatePostRequest DTO
type CreatePostRequest struct {
	AuthorID int64  `json:"author_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// --- StaffService Interface ---
type StaffService interface {
	// StaffMember methods
	CreateStaffMember(req CreateStaffMemberRequest) (*models.StaffMember, error)
	GetStaffMemberByID(staffID int64) (*models.StaffMember, error)
	GetStaffMemberByUserID(userID int64) (*models.StaffMember, error)
	GetStaffMembers(searchTerm *string, specialty *string) ([]models.StaffMember, error)
	UpdateStaffMember(staffID int64, req UpdateStaffMemberRequest) (*models.StaffMember, error)
	SetProfileImage(staffID int64, imageURL string) (*models.StaffMember, error)
	BulkEdit(req BulkEditRequest) (int64, error)

	// Facility assignment methods
	AssignFacility(staffID, facilityID int64) ([]models.Facility, error)
	UnassignFacility(staffID, facilityID int64) error

	// Staff feed methods
	GetPosts() ([]models.StaffPost, error)
	CreatePost(req CreatePostRequest) (*models.StaffPost, error)
	LikePost(postID int64) (*models.StaffPost, error)
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo    repositories.StaffRepository
	facilityRepo repositories.FacilityRepository
	postRepo     repositories.PostRepository
	db           *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, fr repositories.FacilityRepository, pr repositories.PostRepository, db *sql.DB) StaffService {
	return &staffService{
		staffRepo:    sr,
		facilityRepo: fr,
		postRepo:     pr,
		db:           db,
	}
}

// --- StaffMember Method Implementations ---

func (s *staffService) CreateStaffMember(req CreateStaffMemberRequest) (*models.StaffMember, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrStaffDataValidation)
	}
	if strings.TrimSpace(req.Specialty) == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrStaffDataValidation)
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrStaffDataValidation)
	}
	if req.Email != nil && *req.Email != "" && !utils.IsValidEmail(*req.Email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrStaffDataValidation)
	}

	staff := &models.StaffMember{
		UserID:         req.UserID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Specialty:      req.Specialty,
		WorkerType:     req.WorkerType,
		EmploymentType: req.EmploymentType,
		HourlyRate:     req.HourlyRate,
		IsActive:       true,
		Certifications: req.Certifications,
		Skills:         req.Skills,
		WorkHistory:    req.WorkHistory,
		Education:      req.Education,
	}

	createdStaff, err := s.staffRepo.CreateStaffMember(s.db, staff)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff member in repository: %w", err)
	}
	return createdStaff, nil
}

func (s *staffService) GetStaffMemberByID(staffID int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member by ID: %w", err)
	}

	facilities, err := s.staffRepo.GetStaffFacilities(staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff facilities: %w", err)
	}
	staff.Facilities = facilities
	return staff, nil
}

func (s *staffService) GetStaffMemberByUserID(userID int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member by user ID: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaffMembers(searchTerm *string, specialty *string) ([]models.StaffMember, error) {
	staffMembers, err := s.staffRepo.GetStaffMembers(searchTerm, specialty)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff members: %w", err)
	}
	return staffMembers, nil
}

func (s *staffService) UpdateStaffMember(staffID int64, req UpdateStaffMemberRequest) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff member for update: %w", err)
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty if provided", ErrStaffDataValidation)
		}
		staff.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, fmt.Errorf("%w: last name cannot be empty if provided", ErrStaffDataValidation)
		}
		staff.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		if *req.Email != "" && !utils.IsValidEmail(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email address", ErrStaffDataValidation)
		}
		staff.Email = req.Email
	}
	if req.PhoneNumber != nil {
		staff.PhoneNumber = req.PhoneNumber
	}
	if req.Specialty != nil {
		if strings.TrimSpace(*req.Specialty) == "" {
			return nil, fmt.Errorf("%w: specialty cannot be empty if provided", ErrStaffDataValidation)
		}
		staff.Specialty = *req.Specialty
	}
	if req.WorkerType != nil {
		staff.WorkerType = req.WorkerType
	}
	if req.EmploymentType != nil {
		staff.EmploymentType = req.EmploymentType
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrStaffDataValidation)
		}
		staff.HourlyRate = req.HourlyRate
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.Certifications != nil {
		staff.Certifications = req.Certifications
	}
	if req.Skills != nil {
		staff.Skills = req.Skills
	}
	if req.WorkHistory != nil {
		staff.WorkHistory = req.WorkHistory
	}
	if req.Education != nil {
		staff.Education = req.Education
	}
	if req.Documents != nil {
		staff.Documents = req.Documents
	}

	updatedStaff, err := s.staffRepo.UpdateStaffMember(s.db, staff)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member in repository: %w", err)
	}
	return updatedStaff, nil
}

func (s *staffService) SetProfileImage(staffID int64, imageURL string) (*models.StaffMember, error) {
	err := s.staffRepo.UpdateProfileImage(s.db, staffID, imageURL)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update profile image: %w", err)
	}
	return s.staffRepo.GetStaffMemberByID(staffID)
}

func (s *staffService) BulkEdit(req BulkEditRequest) (int64, error) {
	if len(req.StaffIDs) == 0 {
		return 0, fmt.Errorf("%w: staff_ids cannot be empty", ErrStaffDataValidation)
	}
	updated, err := s.staffRepo.BulkUpdateField(s.db, req.StaffIDs, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, repositories.ErrFieldNotEditable) {
			return 0, fmt.Errorf("%w: %s", ErrBulkEditField, req.Field)
		}
		return 0, fmt.Errorf("failed to bulk edit staff: %w", err)
	}
	return updated, nil
}

// --- Facility Assignment Method Implementations ---

func (s *staffService) AssignFacility(staffID, facilityID int64) ([]models.Facility, error) {
	if _, err := s.staffRepo.GetStaffMemberByID(staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to validate staff member for facility assignment: %w", err)
	}
	if _, err := s.facilityRepo.GetFacilityByID(facilityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to validate facility for assignment: %w", err)
	}

	err := s.staffRepo.AddFacility(s.db, staffID, facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrFacilityAlreadySet
		}
		return nil, fmt.Errorf("failed to assign facility: %w", err)
	}
	return s.staffRepo.GetStaffFacilities(staffID)
}

func (s *staffService) UnassignFacility(staffID, facilityID int64) error {
	err := s.staffRepo.RemoveFacility(s.db, staffID, facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("failed to unassign facility: %w", err)
	}
	return nil
}

// --- Staff Feed Method Implementations ---

func (s *staffService) GetPosts() ([]models.StaffPost, error) {
	posts, err := s.postRepo.GetPosts()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff posts: %w", err)
	}
	return posts, nil
}

func (s *staffService) CreatePost(req CreatePostRequest) (*models.StaffPost, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrPostValidation)
	}

	author, err := s.staffRepo.GetStaffMemberByID(req.AuthorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to validate post author: %w", err)
	}

	post := &models.StaffPost{
		AuthorID:   author.ID,
		AuthorName: utils.DisplayName(author.FirstName, author.LastName),
		Content:    strings.TrimSpace(req.Content),
	}
	createdPost, err := s.postRepo.CreatePost(s.db, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff post: %w", err)
	}
	return createdPost, nil
}

func (s *staffService) LikePost(postID int64) (*models.StaffPost, error) {
	post, err := s.postRepo.LikePost(s.db, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to like staff post: %w", err)
	}
	return post, nil
}
