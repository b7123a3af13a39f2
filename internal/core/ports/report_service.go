package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// BestCreator is one ranked row of the best-creators view, joined against
// the user profile with fallback defaults when the profile is missing.
type BestCreator struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Image              string `json:"image,omitempty"`
	ContestCount       int64  `json:"contest_count"`
	TotalParticipation int64  `json:"total_participation"`
}

// AdminStats is the aggregate dashboard view. All sums default to zero when
// a collection is empty.
type AdminStats struct {
	TotalUsers         int64   `json:"total_users"`
	TotalContests      int64   `json:"total_contests"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalParticipation int64   `json:"total_participation"`
}

// ReportService provides the read-only aggregation views.
type ReportService interface {
	// Popular returns at most limit accepted contests, participation
	// descending.
	Popular(ctx context.Context, limit int) ([]*domain.Contest, error)
	BestCreators(ctx context.Context, limit int) ([]BestCreator, error)
	Stats(ctx context.Context) (*AdminStats, error)
}
