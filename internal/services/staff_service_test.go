package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstaff_backend/internal/repositories"
)

// bulkEditStaffRepo records the bulk-edit call; the embedded interface stays
// nil because nothing else is reached.
type bulkEditStaffRepo struct {
	repositories.StaffRepository
	gotField string
	gotValue interface{}
}

func (f *bulkEditStaffRepo) BulkUpdateField(_ repositories.SQLExecutor, staffIDs []int64, field string, value interface{}) (int64, error) {
	f.gotField = field
	f.gotValue = value
	return int64(len(staffIDs)), nil
}

func TestBulkEditRejectsNonWhitelistedField(t *testing.T) {
	// The real repository enforces the whitelist before touching the database,
	// so it can run without a connection here.
	svc := &staffService{staffRepo: repositories.NewStaffRepository(nil)}

	_, err := svc.BulkEdit(BulkEditRequest{
		StaffIDs: []int64{1, 2},
		Field:    "email",
		Value:    "all@example.com",
	})
	assert.ErrorIs(t, err, ErrBulkEditField)

	_, err = svc.BulkEdit(BulkEditRequest{
		StaffIDs: []int64{1},
		Field:    "password_hash",
		Value:    "x",
	})
	assert.ErrorIs(t, err, ErrBulkEditField)
}

func TestBulkEditRequiresStaffIDs(t *testing.T) {
	svc := &staffService{staffRepo: &bulkEditStaffRepo{}}

	_, err := svc.BulkEdit(BulkEditRequest{Field: "specialty", Value: "Registered Nurse"})
	assert.ErrorIs(t, err, ErrStaffDataValidation)
}

func TestBulkEditAppliesWhitelistedField(t *testing.T) {
	repo := &bulkEditStaffRepo{}
	svc := &staffService{staffRepo: repo}

	updated, err := svc.BulkEdit(BulkEditRequest{
		StaffIDs: []int64{1, 2, 3},
		Field:    "hourly_rate",
		Value:    52.0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	assert.Equal(t, "hourly_rate", repo.gotField)
	assert.Equal(t, 52.0, repo.gotValue)
}
