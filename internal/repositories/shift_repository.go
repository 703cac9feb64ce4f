package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medstaff_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ShiftFilter narrows shift queries at the database level. Derived-view
// filtering (department/specialty/urgency/search) happens in the scheduling
// package; the repository only narrows by the indexed columns.
type ShiftFilter struct {
	FacilityID *int64
	Status     *string
	From       *time.Time // inclusive lower bound on start_time
	To         *time.Time // exclusive upper bound on start_time
}

// ShiftRepository defines the interface for shift and block-shift database operations.
type ShiftRepository interface {
	CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(id int64) (*models.Shift, error)
	GetShifts(filter ShiftFilter) ([]models.Shift, error)
	UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	DeleteShift(executor SQLExecutor, id int64) error

	CreateBlockShift(executor SQLExecutor, block *models.BlockShift) (*models.BlockShift, error)
	GetBlockShiftByID(id int64) (*models.BlockShift, error)
	GetBlockShifts(facilityID *int64) ([]models.BlockShift, error)
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, title, facility_id, department, specialty, start_time, end_time,
	hourly_rate, status, urgency, assignee_id, assignee_name, requirements, notes,
	created_at, updated_at`

func scanShiftRow(row scanner) (*models.Shift, error) {
	var shift models.Shift
	err := row.Scan(
		&shift.ID, &shift.Title, &shift.FacilityID, &shift.Department, &shift.Specialty,
		&shift.StartTime, &shift.EndTime, &shift.HourlyRate, &shift.Status, &shift.Urgency,
		&shift.AssigneeID, &shift.AssigneeName, &shift.Requirements, &shift.Notes,
		&shift.CreatedAt, &shift.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}
	return &shift, nil
}

// CreateShift inserts a new shift.
func (r *shiftRepository) CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts (title, facility_id, department, specialty, start_time, end_time,
	            hourly_rate, status, urgency, assignee_id, assignee_name, requirements, notes,
	            created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	shift.CreatedAt = currentTime
	shift.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		shift.Title, shift.FacilityID, shift.Department, shift.Specialty,
		shift.StartTime, shift.EndTime, shift.HourlyRate, shift.Status, shift.Urgency,
		shift.AssigneeID, shift.AssigneeName, shift.Requirements, shift.Notes,
		shift.CreatedAt, shift.UpdatedAt,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: referenced facility or assignee not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

// GetShiftByID retrieves a single shift.
func (r *shiftRepository) GetShiftByID(id int64) (*models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	return scanShiftRow(r.db.QueryRow(query, id))
}

// GetShifts retrieves shifts matching the database-level filter, ordered by
// start time.
func (r *shiftRepository) GetShifts(filter ShiftFilter) ([]models.Shift, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + shiftColumns + ` FROM shifts`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.FacilityID != nil {
		conditions = append(conditions, fmt.Sprintf("facility_id = $%d", argCount))
		args = append(args, *filter.FacilityID)
		argCount++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", argCount))
		args = append(args, *filter.From)
		argCount++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_time < $%d", argCount))
		args = append(args, *filter.To)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY start_time ASC, id ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		shift, scanErr := scanShiftRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shifts: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

// UpdateShift persists all mutable fields of a shift.
func (r *shiftRepository) UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `UPDATE shifts SET
	            title = $1, facility_id = $2, department = $3, specialty = $4, start_time = $5,
	            end_time = $6, hourly_rate = $7, status = $8, urgency = $9, assignee_id = $10,
	            assignee_name = $11, requirements = $12, notes = $13, updated_at = $14
	          WHERE id = $15`

	shift.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		shift.Title, shift.FacilityID, shift.Department, shift.Specialty, shift.StartTime,
		shift.EndTime, shift.HourlyRate, shift.Status, shift.Urgency, shift.AssigneeID,
		shift.AssigneeName, shift.Requirements, shift.Notes, shift.UpdatedAt, shift.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: updating shift %d: %v", ErrDatabaseError, shift.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return shift, nil
}

// DeleteShift removes a shift.
func (r *shiftRepository) DeleteShift(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- BlockShift Methods ---

const blockShiftColumns = `id, title, facility_id, department, specialty, start_date, end_date,
	shift_time, positions, hourly_rate, status, urgency, requirements, notes, created_at, updated_at`

func scanBlockShiftRow(row scanner) (*models.BlockShift, error) {
	var block models.BlockShift
	// DATE columns come back as time.Time; the model carries YYYY-MM-DD keys.
	var startDate, endDate time.Time
	err := row.Scan(
		&block.ID, &block.Title, &block.FacilityID, &block.Department, &block.Specialty,
		&startDate, &endDate, &block.ShiftTime, &block.Positions,
		&block.HourlyRate, &block.Status, &block.Urgency, &block.Requirements, &block.Notes,
		&block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning block shift: %v", ErrDatabaseError, err)
	}
	block.StartDate = startDate.Format("2006-01-02")
	block.EndDate = endDate.Format("2006-01-02")
	return &block, nil
}

// CreateBlockShift inserts a new block shift.
func (r *shiftRepository) CreateBlockShift(executor SQLExecutor, block *models.BlockShift) (*models.BlockShift, error) {
	query := `INSERT INTO block_shifts (title, facility_id, department, specialty, start_date, end_date,
	            shift_time, positions, hourly_rate, status, urgency, requirements, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	block.CreatedAt = currentTime
	block.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		block.Title, block.FacilityID, block.Department, block.Specialty,
		block.StartDate, block.EndDate, block.ShiftTime, block.Positions,
		block.HourlyRate, block.Status, block.Urgency, block.Requirements, block.Notes,
		block.CreatedAt, block.UpdatedAt,
	).Scan(&block.ID, &block.CreatedAt, &block.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: referenced facility not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: creating block shift: %v", ErrDatabaseError, err)
	}
	return block, nil
}

// GetBlockShiftByID retrieves a single block shift.
func (r *shiftRepository) GetBlockShiftByID(id int64) (*models.BlockShift, error) {
	query := `SELECT ` + blockShiftColumns + ` FROM block_shifts WHERE id = $1`
	return scanBlockShiftRow(r.db.QueryRow(query, id))
}

// GetBlockShifts retrieves block shifts, optionally narrowed to a facility,
// ordered by start date.
func (r *shiftRepository) GetBlockShifts(facilityID *int64) ([]models.BlockShift, error) {
	query := `SELECT ` + blockShiftColumns + ` FROM block_shifts`
	var args []interface{}
	if facilityID != nil {
		query += ` WHERE facility_id = $1`
		args = append(args, *facilityID)
	}
	query += ` ORDER BY start_date ASC, id ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying block shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	blocks := []models.BlockShift{}
	for rows.Next() {
		block, scanErr := scanBlockShiftRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating block shifts: %v", ErrDatabaseError, err)
	}
	return blocks, nil
}
