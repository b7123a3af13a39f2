package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// RegisterUserInput carries the identity attributes supplied at first login.
type RegisterUserInput struct {
	Email string
	Name  string
	Image string
}

// RegisterResult reports the outcome of a registration call. Registration is
// idempotent: when the email is already known, AlreadyExisted is true and
// InsertedID is empty.
type RegisterResult struct {
	InsertedID     string
	AlreadyExisted bool
}

// ListUsersResult is returned by the paginated admin listing.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations for accounts and roles.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*RegisterResult, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*ListUsersResult, error)
	// UpdateProfile is self-service: callerEmail must match email.
	UpdateProfile(ctx context.Context, callerEmail, email, name, image string) (*domain.User, error)
	// ChangeRole validates the raw role against the closed enum before writing.
	ChangeRole(ctx context.Context, id, rawRole string) error
	// HasRole reports whether the stored role of email equals role.
	// The store is consulted on every call; there is no caching.
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
}
