package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contesthub/backend/internal/api/metrics"
	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

type SubmissionService struct {
	repo     ports.SubmissionRepository
	payments ports.PaymentRepository
	contests ports.ContestRepository
	log      zerolog.Logger
}

func NewSubmissionService(
	repo ports.SubmissionRepository,
	payments ports.PaymentRepository,
	contests ports.ContestRepository,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{repo: repo, payments: payments, contests: contests, log: log}
}

// Submit records one entry per (contest, participant) pair, gated on a
// prior payment. The unique index behind Insert makes the pair constraint
// hold even for concurrent submissions.
func (s *SubmissionService) Submit(ctx context.Context, in ports.SubmitInput) (string, error) {
	paid, err := s.payments.ExistsForContest(ctx, in.Email, in.ContestID)
	if err != nil {
		return "", err
	}
	if !paid {
		return "", domain.ErrPaymentRequired
	}

	submission := &domain.Submission{
		ContestID:   in.ContestID,
		Email:       in.Email,
		Entry:       in.Entry,
		SubmittedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, submission)
	if err != nil {
		return "", err
	}

	metrics.SubmissionsReceivedTotal.Inc()
	s.log.Info().Str("submission_id", id).Str("contest_id", in.ContestID).Str("email", in.Email).Msg("submission recorded")
	return id, nil
}

// ListForContest returns all entries of a contest to its creator.
func (s *SubmissionService) ListForContest(ctx context.Context, contestID, callerEmail string) ([]*domain.Submission, error) {
	contest, err := s.contests.FindByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.OwnedBy(callerEmail) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByContest(ctx, contestID)
}
