package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medstaff_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// TimeClockRepository defines the interface for time-clock database operations.
// A partial unique index on (user_id) WHERE clock_out IS NULL backs the
// one-active-entry-per-user invariant.
type TimeClockRepository interface {
	CreateEntry(executor SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error)
	GetActiveEntry(userID int64) (*models.TimeClockEntry, error)
	GetEntryByID(id int64) (*models.TimeClockEntry, error)
	GetEntriesByUser(userID int64, from, to *time.Time) ([]models.TimeClockEntry, error)
	CloseEntry(executor SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error)
}

type timeClockRepository struct {
	db *sql.DB
}

// NewTimeClockRepository creates a new instance of TimeClockRepository.
func NewTimeClockRepository(db *sql.DB) TimeClockRepository {
	return &timeClockRepository{db: db}
}

const timeClockColumns = `id, user_id, clock_in, clock_out, break_minutes, hours, earnings,
	supervisor_id, supervisor_note, approved_at, created_at, updated_at`

func scanTimeClockRow(row scanner) (*models.TimeClockEntry, error) {
	var entry models.TimeClockEntry
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.ClockIn, &entry.ClockOut, &entry.BreakMinutes,
		&entry.Hours, &entry.Earnings, &entry.SupervisorID, &entry.SupervisorNote,
		&entry.ApprovedAt, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning time clock entry: %v", ErrDatabaseError, err)
	}
	return &entry, nil
}

// CreateEntry opens a new clock-in session.
func (r *timeClockRepository) CreateEntry(executor SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error) {
	query := `INSERT INTO time_clock_entries (user_id, clock_in, break_minutes, hours, earnings, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	entry.CreatedAt = currentTime
	entry.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		entry.UserID, entry.ClockIn, entry.BreakMinutes, entry.Hours, entry.Earnings,
		entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: user %d already has an open session", ErrDuplicateKey, entry.UserID)
		}
		return nil, fmt.Errorf("%w: creating time clock entry: %v", ErrDatabaseError, err)
	}
	return entry, nil
}

// GetActiveEntry returns the user's open session, or ErrNotFound if the user
// is not clocked in.
func (r *timeClockRepository) GetActiveEntry(userID int64) (*models.TimeClockEntry, error) {
	query := `SELECT ` + timeClockColumns + ` FROM time_clock_entries
	          WHERE user_id = $1 AND clock_out IS NULL`
	return scanTimeClockRow(r.db.QueryRow(query, userID))
}

// GetEntryByID retrieves a single entry.
func (r *timeClockRepository) GetEntryByID(id int64) (*models.TimeClockEntry, error) {
	query := `SELECT ` + timeClockColumns + ` FROM time_clock_entries WHERE id = $1`
	return scanTimeClockRow(r.db.QueryRow(query, id))
}

// GetEntriesByUser lists a user's entries, optionally bounded by clock-in
// time, newest first.
func (r *timeClockRepository) GetEntriesByUser(userID int64, from, to *time.Time) ([]models.TimeClockEntry, error) {
	query := `SELECT ` + timeClockColumns + ` FROM time_clock_entries WHERE user_id = $1`
	args := []interface{}{userID}
	argCount := 2

	if from != nil {
		query += fmt.Sprintf(" AND clock_in >= $%d", argCount)
		args = append(args, *from)
		argCount++
	}
	if to != nil {
		query += fmt.Sprintf(" AND clock_in < $%d", argCount)
		args = append(args, *to)
		argCount++
	}
	query += " ORDER BY clock_in DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying time clock entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.TimeClockEntry{}
	for rows.Next() {
		entry, scanErr := scanTimeClockRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating time clock entries: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// CloseEntry writes the adjusted times, break, derived hours and earnings of a
// completed session.
func (r *timeClockRepository) CloseEntry(executor SQLExecutor, entry *models.TimeClockEntry) (*models.TimeClockEntry, error) {
	query := `UPDATE time_clock_entries SET
	            clock_in = $1, clock_out = $2, break_minutes = $3, hours = $4, earnings = $5, updated_at = $6
	          WHERE id = $7 AND clock_out IS NULL`

	entry.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		entry.ClockIn, entry.ClockOut, entry.BreakMinutes, entry.Hours, entry.Earnings,
		entry.UpdatedAt, entry.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: closing time clock entry %d: %v", ErrDatabaseError, entry.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return entry, nil
}
