package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users and the total count. Page is 1-based.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	// UpdateProfile patches the self-service fields (name, image).
	UpdateProfile(ctx context.Context, email, name, image string) (*domain.User, error)
	// UpdateRole sets the role of the user with the given id.
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	Count(ctx context.Context) (int64, error)
}
