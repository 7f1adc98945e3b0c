package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "campus/backend/internal/domain/attendance"
	authdomain "campus/backend/internal/domain/auth"
	subjectdomain "campus/backend/internal/domain/subject"

	"github.com/google/uuid"
)

// ErrNotOwner indicates a student tried to modify another student's record.
var ErrNotOwner = errors.New("not authorized to update this attendance record")

// Service encapsulates attendance use cases.
type Service struct {
	records  domain.Repository
	subjects subjectdomain.Repository
	nowFunc  func() time.Time
}

// NewService constructs an attendance service.
func NewService(records domain.Repository, subjects subjectdomain.Repository) *Service {
	return &Service{
		records:  records,
		subjects: subjects,
		nowFunc:  time.Now,
	}
}

// RecordInput contains the payload for recording attendance.
type RecordInput struct {
	SubjectID string
	Date      time.Time
	Status    string
}

// Record stores one attendance entry for the acting user. The record is always
// stamped with the caller's id. Recording twice for the same subject and
// calendar day is rejected.
func (s *Service) Record(ctx context.Context, actor *authdomain.User, input RecordInput) (*domain.Record, error) {
	subjectID := strings.TrimSpace(input.SubjectID)
	if subjectID == "" {
		return nil, subjectdomain.ErrNotFound
	}

	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	exists, err := s.records.ExistsForDay(ctx, actor.ID, subjectID, input.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyRecorded
	}

	record := &domain.Record{
		ID:        uuid.NewString(),
		StudentID: actor.ID,
		SubjectID: subjectID,
		Date:      input.Date,
		Status:    status,
		CreatedAt: s.nowFunc().UTC(),
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateStatus changes the status of an existing record. Students may only
// touch their own records; teachers and admins may update any.
func (s *Service) UpdateStatus(ctx context.Context, actor *authdomain.User, id, rawStatus string) (*domain.Record, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.StudentID != actor.ID && actor.Role == authdomain.RoleStudent {
		return nil, ErrNotOwner
	}

	return s.records.UpdateStatus(ctx, id, status)
}

// QueryInput narrows a listing to an optional subject and date range.
type QueryInput struct {
	SubjectID string
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns the acting user's attendance records matching the query.
func (s *Service) List(ctx context.Context, actor *authdomain.User, input QueryInput) ([]*domain.Record, error) {
	return s.records.List(ctx, domain.Filter{
		StudentID: actor.ID,
		SubjectID: strings.TrimSpace(input.SubjectID),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
}

// SubjectSummary reports per-subject attendance counts and percentage.
type SubjectSummary struct {
	SubjectID            string  `json:"subject_id"`
	SubjectName          string  `json:"subject_name"`
	SubjectCode          string  `json:"subject_code"`
	TotalClasses         int     `json:"total_classes"`
	ClassesAttended      int     `json:"classes_attended"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Summary computes the acting user's attendance percentage for every subject.
// Subjects without records report zero classes and a zero percentage.
func (s *Service) Summary(ctx context.Context, actor *authdomain.User) ([]SubjectSummary, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.records.StatsByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]SubjectSummary, 0, len(subjects))
	for _, subject := range subjects {
		counts := stats[subject.ID]
		summary := SubjectSummary{
			SubjectID:       subject.ID,
			SubjectName:     subject.Name,
			SubjectCode:     subject.Code,
			TotalClasses:    counts.Total,
			ClassesAttended: counts.Present,
		}
		if counts.Total > 0 {
			summary.AttendancePercentage = float64(counts.Present) / float64(counts.Total) * 100
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
