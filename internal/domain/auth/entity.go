package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown email and wrong
	// password are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates the provided role is not supported.
	ErrInvalidRole = errors.New("invalid role")
)

// Role identifies the privileges assigned to a user.
type Role string

const (
	// RoleStudent represents a student who records and queries their own attendance.
	RoleStudent Role = "student"
	// RoleTeacher represents teaching staff allowed to manage subjects.
	RoleTeacher Role = "teacher"
	// RoleAdmin represents an administrative user.
	RoleAdmin Role = "admin"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(raw), nil
	}
	return "", ErrInvalidRole
}

// User models the identity record persisted in storage. The password hash never
// leaves the process: it is excluded from JSON and stripped before the entity
// crosses the usecase boundary.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	EnrollmentNumber string    `json:"enrollment_number,omitempty"`
	Branch           string    `json:"branch,omitempty"`
	Year             int       `json:"year,omitempty"`
	Role             Role      `json:"role"`
	PasswordHash     string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasAnyRole reports whether the user's role is one of the required roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}
