package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

const (
	popularLimit      = 5
	bestCreatorsLimit = 3

	fallbackCreatorName = "Unknown Creator"
)

type ReportService struct {
	users    ports.UserRepository
	contests ports.ContestRepository
	payments ports.PaymentRepository
	log      zerolog.Logger
}

func NewReportService(
	users ports.UserRepository,
	contests ports.ContestRepository,
	payments ports.PaymentRepository,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{users: users, contests: contests, payments: payments, log: log}
}

// Popular returns accepted contests ordered by participation, capped.
func (s *ReportService) Popular(ctx context.Context, limit int) ([]*domain.Contest, error) {
	if limit <= 0 || limit > popularLimit {
		limit = popularLimit
	}
	return s.contests.Popular(ctx, limit)
}

// BestCreators ranks creators of accepted contests by summed participation
// and joins their profiles, falling back to defaults when a profile is
// missing.
func (s *ReportService) BestCreators(ctx context.Context, limit int) ([]ports.BestCreator, error) {
	if limit <= 0 {
		limit = bestCreatorsLimit
	}

	rows, err := s.contests.CreatorLeaders(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ports.BestCreator, 0, len(rows))
	for _, row := range rows {
		best := ports.BestCreator{
			Email:              row.CreatorEmail,
			Name:               fallbackCreatorName,
			ContestCount:       row.ContestCount,
			TotalParticipation: row.TotalParticipation,
		}

		profile, err := s.users.FindByEmail(ctx, row.CreatorEmail)
		switch {
		case err == nil:
			best.Name = profile.Name
			best.Image = profile.Image
		case errors.Is(err, domain.ErrUserNotFound):
			s.log.Warn().Str("email", row.CreatorEmail).Msg("creator has no profile, using defaults")
		default:
			return nil, err
		}

		out = append(out, best)
	}
	return out, nil
}

// Stats aggregates the admin dashboard counters. Missing inputs sum to zero.
func (s *ReportService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	contests, err := s.contests.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	participation, err := s.contests.TotalParticipation(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStats{
		TotalUsers:         users,
		TotalContests:      contests,
		TotalRevenue:       revenue,
		TotalParticipation: participation,
	}, nil
}
