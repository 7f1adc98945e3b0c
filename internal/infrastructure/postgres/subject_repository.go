package postgres

import (
	"context"
	"errors"

	domain "campus/backend/internal/domain/subject"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubjectRepository persists subjects in PostgreSQL.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository constructs a repository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	const query = `
INSERT INTO subjects (id, name, code, description, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.pool.Exec(ctx, query,
		subject.ID,
		subject.Name,
		subject.Code,
		subject.Description,
		subject.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// GetByID fetches a subject by id.
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	const query = `
SELECT id, name, code, description, created_at
FROM subjects WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	subject, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

// GetByCode fetches a subject using its course code.
func (r *SubjectRepository) GetByCode(ctx context.Context, code string) (*domain.Subject, error) {
	const query = `
SELECT id, name, code, description, created_at
FROM subjects WHERE code = $1
`
	row := r.pool.QueryRow(ctx, query, code)
	subject, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

// List returns all subjects sorted by name.
func (r *SubjectRepository) List(ctx context.Context) ([]*domain.Subject, error) {
	const query = `
SELECT id, name, code, description, created_at
FROM subjects
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func scanSubject(row pgx.Row) (*domain.Subject, error) {
	var s domain.Subject
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Code,
		&s.Description,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
