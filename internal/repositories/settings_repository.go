package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medstaff_backend/internal/models"
)

// settingsRowID pins the singleton settings row.
const settingsRowID = 1

// SettingsRepository defines the interface for the singleton system settings.
type SettingsRepository interface {
	GetSettings() (*models.SystemSettings, error)
	SaveSettings(executor SQLExecutor, settings *models.SystemSettings) (*models.SystemSettings, error)
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetSettings fetches the singleton settings row.
func (r *settingsRepository) GetSettings() (*models.SystemSettings, error) {
	query := `SELECT id, organization_name, timezone, overtime_threshold_hours, overtime_multiplier,
	            allow_self_scheduling, default_shift_hours, updated_at
	          FROM system_settings WHERE id = $1`

	var settings models.SystemSettings
	err := r.db.QueryRow(query, settingsRowID).Scan(
		&settings.ID, &settings.OrganizationName, &settings.Timezone,
		&settings.OvertimeThresholdHours, &settings.OvertimeMultiplier,
		&settings.AllowSelfScheduling, &settings.DefaultShiftHours, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching system settings: %v", ErrDatabaseError, err)
	}
	return &settings, nil
}

// SaveSettings upserts the singleton settings row.
func (r *settingsRepository) SaveSettings(executor SQLExecutor, settings *models.SystemSettings) (*models.SystemSettings, error) {
	query := `INSERT INTO system_settings (id, organization_name, timezone, overtime_threshold_hours,
	            overtime_multiplier, allow_self_scheduling, default_shift_hours, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id)
	          DO UPDATE SET organization_name = EXCLUDED.organization_name,
	                        timezone = EXCLUDED.timezone,
	                        overtime_threshold_hours = EXCLUDED.overtime_threshold_hours,
	                        overtime_multiplier = EXCLUDED.overtime_multiplier,
	                        allow_self_scheduling = EXCLUDED.allow_self_scheduling,
	                        default_shift_hours = EXCLUDED.default_shift_hours,
	                        updated_at = EXCLUDED.updated_at
	          RETURNING id, updated_at`

	settings.ID = settingsRowID
	settings.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		settings.ID, settings.OrganizationName, settings.Timezone,
		settings.OvertimeThresholdHours, settings.OvertimeMultiplier,
		settings.AllowSelfScheduling, settings.DefaultShiftHours, settings.UpdatedAt,
	).Scan(&settings.ID, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: saving system settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}
