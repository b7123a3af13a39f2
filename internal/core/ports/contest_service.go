package ports

import (
	"context"
	"time"

	"github.com/contesthub/backend/internal/core/domain"
)

// CreateContestInput carries all data needed to create a new contest.
// Status and participation count are never taken from input.
type CreateContestInput struct {
	CreatorEmail string
	Name         string
	Type         string
	Image        string
	Description  string
	Instructions string
	Fee          float64
	PrizeMoney   float64
	Deadline     time.Time
	Extra        map[string]any
}

// ListContestsInput carries the public listing parameters.
type ListContestsInput struct {
	Type   string
	Search string
	Page   int
	Limit  int
}

// ListContestsResult is returned by the paginated listings.
type ListContestsResult struct {
	Items      []*domain.Contest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DeclareWinnerInput identifies the contest and the winning participant.
type DeclareWinnerInput struct {
	ContestID    string
	CreatorEmail string
	WinnerEmail  string
	WinnerName   string
	WinnerImage  string
}

// ContestService defines use-case operations for the contest lifecycle.
type ContestService interface {
	Create(ctx context.Context, in CreateContestInput) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Contest, error)
	// ListPublic returns accepted contests only.
	ListPublic(ctx context.Context, in ListContestsInput) (*ListContestsResult, error)
	ListByCreator(ctx context.Context, creatorEmail string) ([]*domain.Contest, error)
	// ListAll is the admin view across every status.
	ListAll(ctx context.Context, page, limit int) (*ListContestsResult, error)
	// SetStatus applies an admin review decision (accepted or rejected).
	SetStatus(ctx context.Context, id, rawStatus string) error
	// Edit and DeleteOwn succeed only for the owning creator while the
	// contest is still pending; both causes share one forbidden error.
	Edit(ctx context.Context, id, creatorEmail string, patch ContestPatch) error
	DeleteOwn(ctx context.Context, id, creatorEmail string) error
	// DeleteAny is the admin hard delete, valid at any status.
	DeleteAny(ctx context.Context, id string) error
	DeclareWinner(ctx context.Context, in DeclareWinnerInput) error
	Winners(ctx context.Context) ([]*domain.Contest, error)
}
