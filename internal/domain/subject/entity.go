package subject

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the subject does not exist.
	ErrNotFound = errors.New("subject not found")
	// ErrDuplicateCode signals a subject code collision.
	ErrDuplicateCode = errors.New("subject code already exists")
)

// Subject models a course that attendance is recorded against.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
