package ports

import (
	"context"
	"time"

	"github.com/contesthub/backend/internal/core/domain"
)

// IntentClient abstracts the external payment provider. Amount is in the
// currency's minor unit (cents).
type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

// RecordPaymentInput carries a client-confirmed charge to be recorded.
type RecordPaymentInput struct {
	Email         string
	ContestID     string
	ContestName   string
	Amount        float64
	TransactionID string
	PaidAt        time.Time
}

// RecordPaymentResult reports both halves of the record operation: the
// inserted payment and whether the participation counter was bumped.
type RecordPaymentResult struct {
	PaymentID          string
	ContestIncremented bool
	// Replayed is true when the transaction id was already seen and the
	// whole operation was skipped.
	Replayed bool
}

// PaymentService defines use-case operations around paid participation.
type PaymentService interface {
	// CreateIntent converts price to a minor-unit amount and requests a
	// provider intent. Persists nothing.
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
	Record(ctx context.Context, in RecordPaymentInput) (*RecordPaymentResult, error)
	// ParticipatedContests returns the contests the caller has paid for.
	ParticipatedContests(ctx context.Context, email string) ([]*domain.Contest, error)
}
