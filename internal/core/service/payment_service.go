package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/contesthub/backend/internal/api/metrics"
	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

const intentCurrency = "usd"

// ReplayChecker abstracts the transaction-id dedup store (Redis). A replayed
// POST /payments must not double-insert or double-increment.
type ReplayChecker interface {
	IsReplay(ctx context.Context, transactionID string) (bool, error)
	Mark(ctx context.Context, transactionID string) error
}

type PaymentService struct {
	payments ports.PaymentRepository
	contests ports.ContestRepository
	intents  ports.IntentClient
	replay   ReplayChecker
	log      zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	contests ports.ContestRepository,
	intents ports.IntentClient,
	replay ReplayChecker,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		contests: contests,
		intents:  intents,
		replay:   replay,
		log:      log,
	}
}

// CreateIntent converts a decimal price to a minor-unit amount and requests
// a provider intent. Nothing is persisted here.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	if amount < 1 {
		return "", domain.ErrInvalidAmount
	}

	secret, err := s.intents.CreateIntent(ctx, amount, intentCurrency)
	if err != nil {
		metrics.PaymentIntentErrorsTotal.WithLabelValues("provider").Inc()
		s.log.Error().Err(err).Int64("amount", amount).Msg("payment intent creation failed")
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}
	return secret, nil
}

// Record inserts the payment record, then bumps the referenced contest's
// participation counter by exactly 1. The two writes are independent; the
// transaction-id replay check keeps retried requests from running them
// twice.
func (s *PaymentService) Record(ctx context.Context, in ports.RecordPaymentInput) (*ports.RecordPaymentResult, error) {
	if in.TransactionID != "" {
		replayed, err := s.replay.IsReplay(ctx, in.TransactionID)
		if err != nil {
			s.log.Warn().Err(err).Str("transaction_id", in.TransactionID).Msg("replay check failed, recording anyway")
		} else if replayed {
			s.log.Info().Str("transaction_id", in.TransactionID).Msg("payment replay skipped")
			return &ports.RecordPaymentResult{Replayed: true}, nil
		}
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	payment := &domain.Payment{
		Email:         in.Email,
		ContestID:     in.ContestID,
		ContestName:   in.ContestName,
		Amount:        in.Amount,
		TransactionID: in.TransactionID,
		PaidAt:        paidAt,
	}

	paymentID, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return nil, err
	}

	if in.TransactionID != "" {
		if markErr := s.replay.Mark(ctx, in.TransactionID); markErr != nil {
			s.log.Warn().Err(markErr).Str("transaction_id", in.TransactionID).Msg("failed to set replay key")
		}
	}

	result := &ports.RecordPaymentResult{PaymentID: paymentID}
	if err := s.contests.IncrementParticipation(ctx, in.ContestID); err != nil {
		// The payment is already committed; surface the gap instead of
		// failing the whole request.
		s.log.Error().Err(err).
			Str("payment_id", paymentID).
			Str("contest_id", in.ContestID).
			Msg("participation increment failed after payment insert")
	} else {
		result.ContestIncremented = true
	}

	metrics.PaymentsRecordedTotal.Inc()
	s.log.Info().
		Str("payment_id", paymentID).
		Str("contest_id", in.ContestID).
		Str("email", in.Email).
		Msg("payment recorded")
	return result, nil
}

// ParticipatedContests resolves the contests behind the caller's payments.
func (s *PaymentService) ParticipatedContests(ctx context.Context, email string) ([]*domain.Contest, error) {
	payments, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(payments))
	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.ContestID]; ok {
			continue
		}
		seen[p.ContestID] = struct{}{}
		ids = append(ids, p.ContestID)
	}
	if len(ids) == 0 {
		return []*domain.Contest{}, nil
	}

	return s.contests.ListByIDs(ctx, ids)
}
