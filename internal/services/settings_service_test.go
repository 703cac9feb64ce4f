package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstaff_backend/internal/models"
	"medstaff_backend/internal/repositories"
)

// fakeSettingsRepo holds at most the singleton row.
type fakeSettingsRepo struct {
	stored *models.SystemSettings
}

func (f *fakeSettingsRepo) GetSettings() (*models.SystemSettings, error) {
	if f.stored == nil {
		return nil, repositories.ErrNotFound
	}
	found := *f.stored
	return &found, nil
}

func (f *fakeSettingsRepo) SaveSettings(_ repositories.SQLExecutor, settings *models.SystemSettings) (*models.SystemSettings, error) {
	stored := *settings
	f.stored = &stored
	return settings, nil
}

func newTestSettingsService() (*settingsService, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{}
	return &settingsService{settingsRepo: repo}, repo
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool      { return &v }

func TestGetSettingsReturnsDefaultsWhenUnset(t *testing.T) {
	svc, repo := newTestSettingsService()

	settings, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "MedStaff", settings.OrganizationName)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Equal(t, 40.0, settings.OvertimeThresholdHours)
	assert.Equal(t, 1.5, settings.OvertimeMultiplier)
	assert.True(t, settings.AllowSelfScheduling)
	assert.Equal(t, 12.0, settings.DefaultShiftHours)

	// Reads do not seed the row.
	assert.Nil(t, repo.stored)
}

func TestUpdateSettingsSeedsDefaultsOnFirstPatch(t *testing.T) {
	svc, repo := newTestSettingsService()

	settings, err := svc.UpdateSettings(UpdateSettingsRequest{
		OrganizationName: strPtr("Riverside Staffing"),
	})
	require.NoError(t, err)

	// The patched field is applied, everything else keeps its default.
	assert.Equal(t, "Riverside Staffing", settings.OrganizationName)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Equal(t, 1.5, settings.OvertimeMultiplier)
	require.NotNil(t, repo.stored)
	assert.Equal(t, "Riverside Staffing", repo.stored.OrganizationName)
}

func TestUpdateSettingsMergesOnlyProvidedFields(t *testing.T) {
	svc, repo := newTestSettingsService()
	repo.stored = &models.SystemSettings{
		OrganizationName:       "Riverside Staffing",
		Timezone:               "America/Chicago",
		OvertimeThresholdHours: 36,
		OvertimeMultiplier:     2,
		AllowSelfScheduling:    true,
		DefaultShiftHours:      8,
	}

	settings, err := svc.UpdateSettings(UpdateSettingsRequest{
		OvertimeThresholdHours: f64Ptr(44),
		AllowSelfScheduling:    boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 44.0, settings.OvertimeThresholdHours)
	assert.False(t, settings.AllowSelfScheduling)
	// Untouched fields survive the patch.
	assert.Equal(t, "Riverside Staffing", settings.OrganizationName)
	assert.Equal(t, "America/Chicago", settings.Timezone)
	assert.Equal(t, 2.0, settings.OvertimeMultiplier)
	assert.Equal(t, 8.0, settings.DefaultShiftHours)
}

func TestUpdateSettingsValidation(t *testing.T) {
	tests := []struct {
		name string
		req  UpdateSettingsRequest
	}{
		{"negative overtime threshold", UpdateSettingsRequest{OvertimeThresholdHours: f64Ptr(-1)}},
		{"overtime multiplier below one", UpdateSettingsRequest{OvertimeMultiplier: f64Ptr(0.9)}},
		{"zero default shift hours", UpdateSettingsRequest{DefaultShiftHours: f64Ptr(0)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestSettingsService()

			_, err := svc.UpdateSettings(tc.req)
			assert.ErrorIs(t, err, ErrSettingsValidation)
			// A rejected patch never reaches the repository.
			assert.Nil(t, repo.stored)
		})
	}
}
