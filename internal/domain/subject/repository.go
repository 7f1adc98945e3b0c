package subject

import "context"

// Repository defines persistence operations for subjects.
type Repository interface {
	Create(ctx context.Context, subject *Subject) error
	GetByID(ctx context.Context, id string) (*Subject, error)
	GetByCode(ctx context.Context, code string) (*Subject, error)
	List(ctx context.Context) ([]*Subject, error)
}
