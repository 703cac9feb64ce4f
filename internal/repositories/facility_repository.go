package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medstaff_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// FacilityRepository defines the interface for facility database operations.
type FacilityRepository interface {
	CreateFacility(executor SQLExecutor, facility *models.Facility) (*models.Facility, error)
	GetFacilityByID(id int64) (*models.Facility, error)
	GetFacilities() ([]models.Facility, error)
	UpdateFacility(executor SQLExecutor, facility *models.Facility) (*models.Facility, error)
}

type facilityRepository struct {
	db *sql.DB
}

// NewFacilityRepository creates a new instance of FacilityRepository.
func NewFacilityRepository(db *sql.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

const facilityColumns = `id, name, facility_type, address, city, state, phone_number, created_at, updated_at`

func scanFacilityRow(row scanner) (*models.Facility, error) {
	var facility models.Facility
	err := row.Scan(
		&facility.ID, &facility.Name, &facility.FacilityType, &facility.Address,
		&facility.City, &facility.State, &facility.PhoneNumber,
		&facility.CreatedAt, &facility.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning facility: %v", ErrDatabaseError, err)
	}
	return &facility, nil
}

// CreateFacility inserts a new facility.
func (r *facilityRepository) CreateFacility(executor SQLExecutor, facility *models.Facility) (*models.Facility, error) {
	query := `INSERT INTO facilities (name, facility_type, address, city, state, phone_number, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	facility.CreatedAt = currentTime
	facility.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		facility.Name, facility.FacilityType, facility.Address, facility.City,
		facility.State, facility.PhoneNumber, facility.CreatedAt, facility.UpdatedAt,
	).Scan(&facility.ID, &facility.CreatedAt, &facility.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating facility: %v", ErrDatabaseError, err)
	}
	return facility, nil
}

// GetFacilityByID retrieves a single facility.
func (r *facilityRepository) GetFacilityByID(id int64) (*models.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`
	return scanFacilityRow(r.db.QueryRow(query, id))
}

// GetFacilities retrieves all facilities ordered by name.
func (r *facilityRepository) GetFacilities() ([]models.Facility, error) {
	rows, err := r.db.Query(`SELECT ` + facilityColumns + ` FROM facilities ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying facilities: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	facilities := []models.Facility{}
	for rows.Next() {
		facility, scanErr := scanFacilityRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		facilities = append(facilities, *facility)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating facilities: %v", ErrDatabaseError, err)
	}
	return facilities, nil
}

// UpdateFacility persists all mutable fields of a facility.
func (r *facilityRepository) UpdateFacility(executor SQLExecutor, facility *models.Facility) (*models.Facility, error) {
	query := `UPDATE facilities SET
	            name = $1, facility_type = $2, address = $3, city = $4, state = $5,
	            phone_number = $6, updated_at = $7
	          WHERE id = $8`

	facility.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		facility.Name, facility.FacilityType, facility.Address, facility.City,
		facility.State, facility.PhoneNumber, facility.UpdatedAt, facility.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: updating facility %d: %v", ErrDatabaseError, facility.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return facility, nil
}
