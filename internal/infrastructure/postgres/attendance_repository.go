package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "campus/backend/internal/domain/attendance"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository persists attendance records in PostgreSQL.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository constructs a repository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *domain.Record) error {
	const query = `
INSERT INTO attendance (id, student_id, subject_id, date, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.StudentID,
		record.SubjectID,
		record.Date,
		record.Status,
		record.CreatedAt,
	)
	return err
}

// GetByID fetches an attendance record by id.
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	const query = `
SELECT id, student_id, subject_id, date, status, created_at
FROM attendance WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// ExistsForDay reports whether the student already has a record for the subject
// within the UTC calendar day containing date.
func (r *AttendanceRepository) ExistsForDay(ctx context.Context, studentID, subjectID string, date time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM attendance
    WHERE student_id = $1 AND subject_id = $2 AND date >= $3 AND date < $4
)
`
	dayStart := date.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, subjectID, dayStart, dayEnd).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus changes the status of an existing record and returns it.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Record, error) {
	const query = `
UPDATE attendance SET status = $2
WHERE id = $1
RETURNING id, student_id, subject_id, date, status, created_at
`
	row := r.pool.QueryRow(ctx, query, id, status)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns attendance records matching the filter, oldest first.
func (r *AttendanceRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Record, error) {
	query := `
SELECT id, student_id, subject_id, date, status, created_at
FROM attendance
WHERE student_id = $1
`
	args := []any{filter.StudentID}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		query += fmt.Sprintf("AND subject_id = $%d\n", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf("AND date >= $%d\n", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf("AND date <= $%d\n", len(args))
	}
	query += "ORDER BY date ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// StatsByStudent aggregates per-subject totals for the student in one query.
func (r *AttendanceRepository) StatsByStudent(ctx context.Context, studentID string) (map[string]domain.Stats, error) {
	const query = `
SELECT subject_id,
       COUNT(*),
       COUNT(*) FILTER (WHERE status = 'present')
FROM attendance
WHERE student_id = $1
GROUP BY subject_id
`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]domain.Stats)
	for rows.Next() {
		var subjectID string
		var s domain.Stats
		if err := rows.Scan(&subjectID, &s.Total, &s.Present); err != nil {
			return nil, err
		}
		stats[subjectID] = s
	}
	return stats, rows.Err()
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var rec domain.Record
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.SubjectID,
		&rec.Date,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
