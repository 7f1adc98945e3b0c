package subject

import (
	"context"
	"testing"

	domain "campus/backend/internal/domain/subject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubjectRepo struct {
	byID   map[string]*domain.Subject
	byCode map[string]*domain.Subject
	order  []string
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{
		byID:   map[string]*domain.Subject{},
		byCode: map[string]*domain.Subject{},
	}
}

func (f *fakeSubjectRepo) Create(ctx context.Context, subject *domain.Subject) error {
	if _, ok := f.byCode[subject.Code]; ok {
		return domain.ErrDuplicateCode
	}
	stored := *subject
	f.byID[subject.ID] = &stored
	f.byCode[subject.Code] = &stored
	f.order = append(f.order, subject.ID)
	return nil
}

func (f *fakeSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	subject, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *subject
	return &copy, nil
}

func (f *fakeSubjectRepo) GetByCode(ctx context.Context, code string) (*domain.Subject, error) {
	subject, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *subject
	return &copy, nil
}

func (f *fakeSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	subjects := make([]*domain.Subject, 0, len(f.order))
	for _, id := range f.order {
		copy := *f.byID[id]
		subjects = append(subjects, &copy)
	}
	return subjects, nil
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeSubjectRepo())
	subject, err := svc.Create(context.Background(), CreateInput{
		Name:        "  Mathematics ",
		Code:        " MATH101 ",
		Description: "Basic mathematics",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject.ID)
	assert.Equal(t, "Mathematics", subject.Name)
	assert.Equal(t, "MATH101", subject.Code)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeSubjectRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Code: "MATH101"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Mathematics"})
	assert.Error(t, err)
}

func TestCreate_DuplicateCode(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeSubjectRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Mathematics", Code: "MATH101"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "More Mathematics", Code: "MATH101"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestSeedSamples_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeSubjectRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SeedSamples(ctx))
	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 5)

	// Seeding again skips subjects whose code is taken.
	require.NoError(t, svc.SeedSamples(ctx))
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 5)
}
