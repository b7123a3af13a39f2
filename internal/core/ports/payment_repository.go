package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) (string, error)
	// ExistsForContest reports whether email has a recorded payment for the
	// given contest.
	ExistsForContest(ctx context.Context, email, contestID string) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
	// TotalRevenue sums the amount across all payments; zero when empty.
	TotalRevenue(ctx context.Context) (float64, error)
}
