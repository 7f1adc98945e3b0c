package attendance

import (
	"context"
	"time"
)

// Repository defines persistence operations for attendance records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	// ExistsForDay reports whether the student already has a record for the
	// subject anywhere within the calendar day containing date.
	ExistsForDay(ctx context.Context, studentID, subjectID string, date time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Record, error)
	List(ctx context.Context, filter Filter) ([]*Record, error)
	// StatsByStudent returns per-subject attendance counts for the student,
	// keyed by subject id. Subjects with no records are absent from the map.
	StatsByStudent(ctx context.Context, studentID string) (map[string]Stats, error)
}
