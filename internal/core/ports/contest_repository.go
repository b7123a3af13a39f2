package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// ListContestsFilter carries the query parameters for the public listing.
// Only accepted contests are ever returned by the public listing; Status is
// set by the service, not the client.
type ListContestsFilter struct {
	Status domain.ContestStatus // empty = all statuses (admin listing)
	Type   string               // optional: exact match on contest type
	Search string               // optional: case-insensitive substring on name
	Page   int                  // 1-based
	Limit  int
}

// ContestPatch holds the creator-editable fields. Nil pointers leave the
// stored value untouched.
type ContestPatch struct {
	Name         *string
	Type         *string
	Image        *string
	Description  *string
	Instructions *string
	Fee          *float64
	PrizeMoney   *float64
	Deadline     *int64 // unix seconds
	Extra        map[string]any
}

// CreatorAggregate is one row of the best-creators grouping: a creator and
// the summed participation across their accepted contests.
type CreatorAggregate struct {
	CreatorEmail       string
	ContestCount       int64
	TotalParticipation int64
}

// ContestRepository defines persistence operations for contests.
type ContestRepository interface {
	Create(ctx context.Context, c *domain.Contest) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Contest, error)
	// List returns a page of contests matching filter and the total count.
	List(ctx context.Context, filter ListContestsFilter) ([]*domain.Contest, int64, error)
	ListByCreator(ctx context.Context, creatorEmail string) ([]*domain.Contest, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Contest, error)
	UpdateFields(ctx context.Context, id string, patch ContestPatch) error
	SetStatus(ctx context.Context, id string, status domain.ContestStatus) error
	// SetWinner writes the winner sub-record and moves the contest to completed.
	SetWinner(ctx context.Context, id string, w *domain.Winner) error
	Delete(ctx context.Context, id string) error
	// IncrementParticipation adds exactly 1 to the participation counter.
	IncrementParticipation(ctx context.Context, id string) error
	// Popular returns accepted contests ordered by participation descending.
	Popular(ctx context.Context, limit int) ([]*domain.Contest, error)
	// CreatorLeaders groups accepted contests by creator and ranks by summed
	// participation.
	CreatorLeaders(ctx context.Context, limit int) ([]CreatorAggregate, error)
	// Winners returns completed contests that carry a winner record.
	Winners(ctx context.Context) ([]*domain.Contest, error)
	Count(ctx context.Context) (int64, error)
	TotalParticipation(ctx context.Context) (int64, error)
}
