package attendance

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the attendance record does not exist.
	ErrNotFound = errors.New("attendance record not found")
	// ErrAlreadyRecorded signals that attendance for the subject was already
	// recorded on the same calendar day.
	ErrAlreadyRecorded = errors.New("attendance already recorded for this date and subject")
	// ErrInvalidStatus indicates the provided status is not supported.
	ErrInvalidStatus = errors.New("invalid attendance status")
)

// Status marks a student as present or absent for one class.
type Status string

const (
	// StatusPresent marks attendance.
	StatusPresent Status = "present"
	// StatusAbsent marks a missed class.
	StatusAbsent Status = "absent"
)

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPresent, StatusAbsent:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// Record models one attendance entry for a student in a subject on a date.
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	SubjectID string    `json:"subject_id"`
	Date      time.Time `json:"date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows attendance queries to a student and optional subject/date range.
type Filter struct {
	StudentID string
	SubjectID string
	StartDate *time.Time
	EndDate   *time.Time
}

// Stats aggregates per-subject attendance counts for one student.
type Stats struct {
	Total   int
	Present int
}
