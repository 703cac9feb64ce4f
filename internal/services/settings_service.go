package services

import (
	"database/sql"
	"errors"
	"fmt"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
)

var ErrSettingsValidation = errors.New("system settings validation error")

// UpdateSettingsRequest carries PATCH semantics: only non-nil fields are merged
// into the singleton settings object.
type UpdateSettingsRequest struct {
	OrganizationName       *string  `json:"organization_name"`
	Timezone               *string  `json:"timezone"`
	OvertimeThresholdHours *float64 `json:"overtime_threshold_hours"`
	OvertimeMultiplier     *float64 `json:"overtime_multiplier"`
	AllowSelfScheduling    *bool    `json:"allow_self_scheduling"`
	DefaultShiftHours      *float64 `json:"default_shift_hours"`
}

// SettingsService manages the singleton system settings.
type SettingsService interface {
	GetSettings() (*models.SystemSettings, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.SystemSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	db           *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(sr repositories.SettingsRepository, db *sql.DB) SettingsService {
	return &settingsService{settingsRepo: sr, db: db}
}

// defaultSettings seeds the singleton when no row exists yet.
func defaultSettings() *models.SystemSettings {
	return &models.SystemSettings{
		OrganizationName:       "MedStaff",
		Timezone:               "UTC",
		OvertimeThresholdHours: 40,
		OvertimeMultiplier:     1.5,
		AllowSelfScheduling:    true,
		DefaultShiftHours:      12,
	}
}

func (s *settingsService) GetSettings() (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to get system settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			settings = defaultSettings()
		} else {
			return nil, fmt.Errorf("failed to load system settings for update: %w", err)
		}
	}

	if req.OrganizationName != nil {
		settings.OrganizationName = *req.OrganizationName
	}
	if req.Timezone != nil {
		settings.Timezone = *req.Timezone
	}
	if req.OvertimeThresholdHours != nil {
		if *req.OvertimeThresholdHours < 0 {
			return nil, fmt.Errorf("%w: overtime threshold cannot be negative", ErrSettingsValidation)
		}
		settings.OvertimeThresholdHours = *req.OvertimeThresholdHours
	}
	if req.OvertimeMultiplier != nil {
		if *req.OvertimeMultiplier < 1 {
			return nil, fmt.Errorf("%w: overtime multiplier cannot be below 1", ErrSettingsValidation)
		}
		settings.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.AllowSelfScheduling != nil {
		settings.AllowSelfScheduling = *req.AllowSelfScheduling
	}
	if req.DefaultShiftHours != nil {
		if *req.DefaultShiftHours <= 0 {
			return nil, fmt.Errorf("%w: default shift hours must be positive", ErrSettingsValidation)
		}
		settings.DefaultShiftHours = *req.DefaultShiftHours
	}

	savedSettings, err := s.settingsRepo.SaveSettings(s.db, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save system settings: %w", err)
	}
	return savedSettings, nil
}
