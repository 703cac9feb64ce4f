package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
	"medstaff_backend/pkg/utils"
)

var ErrFacilityDataValidation = errors.New("facility data validation error")

// --- Facility DTOs ---
type CreateFacilityRequest struct {
	Name         string  `json:"name" binding:"required"`
	FacilityType *string `json:"facility_type"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PhoneNumber  *string `json:"phone_number"`
}

type UpdateFacilityRequest struct {
	Name         *string `json:"name"`
	FacilityType *string `json:"facility_type"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PhoneNumber  *string `json:"phone_number"`
}

// --- FacilityService Interface ---
type FacilityService interface {
	CreateFacility(req CreateFacilityRequest) (*models.Facility, error)
	GetFacilityByID(facilityID int64) (*models.Facility, error)
	GetFacilities() ([]models.Facility, error)
	UpdateFacility(facilityID int64, req UpdateFacilityRequest) (*models.Facility, error)
}

type facilityService struct {
	facilityRepo repositories.FacilityRepository
	db           *sql.DB
}

// NewFacilityService creates a new instance of FacilityService.
func NewFacilityService(fr repositories.FacilityRepository, db *sql.DB) FacilityService {
	return &facilityService{facilityRepo: fr, db: db}
}

func (s *facilityService) CreateFacility(req CreateFacilityRequest) (*models.Facility, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrFacilityDataValidation)
	}

	facility := &models.Facility{
		Name:         strings.TrimSpace(req.Name),
		FacilityType: req.FacilityType,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PhoneNumber:  req.PhoneNumber,
	}
	createdFacility, err := s.facilityRepo.CreateFacility(s.db, facility)
	if err != nil {
		return nil, fmt.Errorf("failed to create facility in repository: %w", err)
	}
	return createdFacility, nil
}

func (s *facilityService) GetFacilityByID(facilityID int64) (*models.Facility, error) {
	facility, err := s.facilityRepo.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to get facility by ID: %w", err)
	}
	return facility, nil
}

func (s *facilityService) GetFacilities() ([]models.Facility, error) {
	facilities, err := s.facilityRepo.GetFacilities()
	if err != nil {
		return nil, fmt.Errorf("failed to get facilities: %w", err)
	}
	return facilities, nil
}

func (s *facilityService) UpdateFacility(facilityID int64, req UpdateFacilityRequest) (*models.Facility, error) {
	facility, err := s.facilityRepo.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to find facility for update: %w", err)
	}

	if req.Name != nil {
		if utils.IsEmpty(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrFacilityDataValidation)
		}
		facility.Name = strings.TrimSpace(*req.Name)
	}
	if req.FacilityType != nil {
		facility.FacilityType = req.FacilityType
	}
	if req.Address != nil {
		facility.Address = req.Address
	}
	if req.City != nil {
		facility.City = req.City
	}
	if req.State != nil {
		facility.State = req.State
	}
	if req.PhoneNumber != nil {
		facility.PhoneNumber = req.PhoneNumber
	}

	updatedFacility, err := s.facilityRepo.UpdateFacility(s.db, facility)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to update facility in repository: %w", err)
	}
	return updatedFacility, nil
}
