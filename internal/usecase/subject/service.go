package subject

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "campus/backend/internal/domain/subject"

	"github.com/google/uuid"
)

// Service encapsulates subject use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a subject service.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// CreateInput contains the payload required for subject creation.
type CreateInput struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Create stores a new subject after validation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Subject, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	if input.Code == "" {
		return nil, errors.New("code is required")
	}

	if _, err := s.repo.GetByCode(ctx, input.Code); err == nil {
		return nil, domain.ErrDuplicateCode
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	subject := &domain.Subject{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Code:        input.Code,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.nowFunc().UTC(),
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// List returns all subjects.
func (s *Service) List(ctx context.Context) ([]*domain.Subject, error) {
	return s.repo.List(ctx)
}

// SeedSamples inserts a fixed set of sample subjects, skipping any whose code
// is already taken.
func (s *Service) SeedSamples(ctx context.Context) error {
	samples := []CreateInput{
		{Name: "Mathematics", Code: "MATH101", Description: "Basic mathematics"},
		{Name: "Computer Science", Code: "CS101", Description: "Introduction to computer science"},
		{Name: "Physics", Code: "PHYS101", Description: "Basic physics"},
		{Name: "Chemistry", Code: "CHEM101", Description: "Introduction to chemistry"},
		{Name: "English", Code: "ENG101", Description: "English literature"},
	}

	for _, sample := range samples {
		if _, err := s.Create(ctx, sample); err != nil {
			if errors.Is(err, domain.ErrDuplicateCode) {
				continue
			}
			return err
		}
	}
	return nil
}

// Get retrieves a single subject by its identifier.
func (s *Service) Get(ctx context.Context, id string) (*domain.Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
