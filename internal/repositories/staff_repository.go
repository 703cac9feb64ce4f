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

// bulkEditableColumns whitelists the staff columns that the bulk-edit
// operation may touch. Field names arrive from the client and are never
// interpolated into SQL without passing through this map.
var bulkEditableColumns = map[string]string{
	"specialty":       "specialty",
	"worker_type":     "worker_type",
	"employment_type": "employment_type",
	"hourly_rate":     "hourly_rate",
	"is_active":       "is_active",
}

// StaffRepository defines the interface for staff directory database operations.
type StaffRepository interface {
	CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error)
	GetStaffMemberByID(id int64) (*models.StaffMember, error)
	GetStaffMemberByUserID(userID int64) (*models.StaffMember, error)
	GetStaffMembers(searchTerm *string, specialty *string) ([]models.StaffMember, error)
	UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error)
	UpdateProfileImage(executor SQLExecutor, staffID int64, imageURL string) error
	BulkUpdateField(executor SQLExecutor, staffIDs []int64, field string, value interface{}) (int64, error)

	// Facility assignment methods
	AddFacility(executor SQLExecutor, staffID, facilityID int64) error
	RemoveFacility(executor SQLExecutor, staffID, facilityID int64) error
	GetStaffFacilities(staffID int64) ([]models.Facility, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, user_id, first_name, last_name, email, phone_number, specialty,
	worker_type, employment_type, hourly_rate, rating, reliability_score, total_shifts,
	profile_image_url, is_active, certifications, skills, work_history, education,
	documents, social_stats, created_at, updated_at`

func scanStaffMemberRow(row scanner) (*models.StaffMember, error) {
	var staff models.StaffMember
	err := row.Scan(
		&staff.ID, &staff.UserID, &staff.FirstName, &staff.LastName, &staff.Email,
		&staff.PhoneNumber, &staff.Specialty, &staff.WorkerType, &staff.EmploymentType,
		&staff.HourlyRate, &staff.Rating, &staff.ReliabilityScore, &staff.TotalShifts,
		&staff.ProfileImageURL, &staff.IsActive, &staff.Certifications, &staff.Skills,
		&staff.WorkHistory, &staff.Education, &staff.Documents, &staff.SocialStats,
		&staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
	}
	return &staff, nil
}

// CreateStaffMember inserts a new staff member.
func (r *staffRepository) CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	query := `INSERT INTO staff_members (user_id, first_name, last_name, email, phone_number, specialty,
	            worker_type, employment_type, hourly_rate, is_active, certifications, skills,
	            work_history, education, documents, social_stats, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	staff.CreatedAt = currentTime
	staff.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		staff.UserID, staff.FirstName, staff.LastName, staff.Email, staff.PhoneNumber,
		staff.Specialty, staff.WorkerType, staff.EmploymentType, staff.HourlyRate,
		staff.IsActive, nullJSON(staff.Certifications), nullJSON(staff.Skills),
		nullJSON(staff.WorkHistory), nullJSON(staff.Education), nullJSON(staff.Documents),
		nullJSON(staff.SocialStats), staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: referenced user not found", ErrNotFound)
			}
		}
		return nil, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff, nil
}

func nullJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

// GetStaffMemberByID retrieves a staff member by ID.
func (r *staffRepository) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id = $1`
	return scanStaffMemberRow(r.db.QueryRow(query, id))
}

// GetStaffMemberByUserID retrieves the staff member linked to a login account.
func (r *staffRepository) GetStaffMemberByUserID(userID int64) (*models.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE user_id = $1`
	return scanStaffMemberRow(r.db.QueryRow(query, userID))
}

// GetStaffMembers retrieves staff members, optionally narrowed by a
// case-insensitive search over name/email/specialty and by exact specialty.
func (r *staffRepository) GetStaffMembers(searchTerm *string, specialty *string) ([]models.StaffMember, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + staffColumns + ` FROM staff_members`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + *searchTerm + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR specialty ILIKE $%d)",
			argCount, argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}
	if specialty != nil && *specialty != "" {
		conditions = append(conditions, fmt.Sprintf("specialty = $%d", argCount))
		args = append(args, *specialty)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	staffMembers := []models.StaffMember{}
	for rows.Next() {
		staff, scanErr := scanStaffMemberRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		staffMembers = append(staffMembers, *staff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff members: %v", ErrDatabaseError, err)
	}
	return staffMembers, nil
}

// UpdateStaffMember persists all mutable fields of a staff member.
func (r *staffRepository) UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) (*models.StaffMember, error) {
	query := `UPDATE staff_members SET
	            first_name = $1, last_name = $2, email = $3, phone_number = $4, specialty = $5,
	            worker_type = $6, employment_type = $7, hourly_rate = $8, is_active = $9,
	            certifications = $10, skills = $11, work_history = $12, education = $13,
	            documents = $14, social_stats = $15, updated_at = $16
	          WHERE id = $17`

	staff.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		staff.FirstName, staff.LastName, staff.Email, staff.PhoneNumber, staff.Specialty,
		staff.WorkerType, staff.EmploymentType, staff.HourlyRate, staff.IsActive,
		nullJSON(staff.Certifications), nullJSON(staff.Skills), nullJSON(staff.WorkHistory),
		nullJSON(staff.Education), nullJSON(staff.Documents), nullJSON(staff.SocialStats),
		staff.UpdatedAt, staff.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: updating staff member %d: %v", ErrDatabaseError, staff.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return staff, nil
}

// UpdateProfileImage sets a staff member's profile image URL.
func (r *staffRepository) UpdateProfileImage(executor SQLExecutor, staffID int64, imageURL string) error {
	result, err := executor.Exec(
		`UPDATE staff_members SET profile_image_url = $1, updated_at = $2 WHERE id = $3`,
		imageURL, time.Now(), staffID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating profile image for staff %d: %v", ErrDatabaseError, staffID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdateField sets one whitelisted column to the same value for a set of
// staff members, returning the number of rows updated.
func (r *staffRepository) BulkUpdateField(executor SQLExecutor, staffIDs []int64, field string, value interface{}) (int64, error) {
	column, ok := bulkEditableColumns[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldNotEditable, field)
	}
	if len(staffIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(
		`UPDATE staff_members SET %s = $1, updated_at = $2 WHERE id = ANY($3)`, column)
	result, err := executor.Exec(query, value, time.Now(), pq.Array(staffIDs))
	if err != nil {
		return 0, fmt.Errorf("%w: bulk updating %s: %v", ErrDatabaseError, column, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

// --- Facility Assignment Methods ---

// AddFacility links a staff member to a facility.
func (r *staffRepository) AddFacility(executor SQLExecutor, staffID, facilityID int64) error {
	query := `INSERT INTO staff_facilities (staff_id, facility_id, created_at) VALUES ($1, $2, $3)`
	_, err := executor.Exec(query, staffID, facilityID, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: staff %d is already assigned to facility %d", ErrDuplicateKey, staffID, facilityID)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: staff member or facility not found", ErrNotFound)
			}
		}
		return fmt.Errorf("%w: assigning facility: %v", ErrDatabaseError, err)
	}
	return nil
}

// RemoveFacility unlinks a staff member from a facility.
func (r *staffRepository) RemoveFacility(executor SQLExecutor, staffID, facilityID int64) error {
	result, err := executor.Exec(
		`DELETE FROM staff_facilities WHERE staff_id = $1 AND facility_id = $2`,
		staffID, facilityID,
	)
	if err != nil {
		return fmt.Errorf("%w: removing facility assignment: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStaffFacilities lists the facilities a staff member is assigned to.
func (r *staffRepository) GetStaffFacilities(staffID int64) ([]models.Facility, error) {
	query := `SELECT f.id, f.name, f.facility_type, f.address, f.city, f.state, f.phone_number, f.created_at, f.updated_at
	          FROM facilities f
	          JOIN staff_facilities sf ON sf.facility_id = f.id
	          WHERE sf.staff_id = $1
	          ORDER BY f.name ASC`
	rows, err := r.db.Query(query, staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff facilities: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	facilities := []models.Facility{}
	for rows.Next() {
		var f models.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.FacilityType, &f.Address, &f.City, &f.State,
			&f.PhoneNumber, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning facility: %v", ErrDatabaseError, err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff facilities: %v", ErrDatabaseError, err)
	}
	return facilities, nil
}
