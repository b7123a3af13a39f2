package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contesthub/backend/internal/api/metrics"
	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

type ContestService struct {
	repo        ports.ContestRepository
	submissions ports.SubmissionRepository
	log         zerolog.Logger
}

func NewContestService(repo ports.ContestRepository, submissions ports.SubmissionRepository, log zerolog.Logger) *ContestService {
	return &ContestService{repo: repo, submissions: submissions, log: log}
}

// Create inserts a new contest. Status and the participation counter are
// always initialized server-side, regardless of input.
func (s *ContestService) Create(ctx context.Context, in ports.CreateContestInput) (string, error) {
	contest := &domain.Contest{
		Name:         in.Name,
		Type:         in.Type,
		Image:        in.Image,
		Description:  in.Description,
		Instructions: in.Instructions,
		Fee:          in.Fee,
		PrizeMoney:   in.PrizeMoney,
		Deadline:     in.Deadline,
		Status:       domain.StatusPending,
		CreatorEmail: in.CreatorEmail,
		CreatedAt:    time.Now().UTC(),
		Extra:        in.Extra,
	}

	id, err := s.repo.Create(ctx, contest)
	if err != nil {
		s.log.Error().Err(err).Str("creator", in.CreatorEmail).Msg("failed to create contest")
		return "", err
	}

	metrics.ContestsCreatedTotal.WithLabelValues(in.Type).Inc()
	s.log.Info().Str("contest_id", id).Str("creator", in.CreatorEmail).Msg("contest created")
	return id, nil
}

func (s *ContestService) GetByID(ctx context.Context, id string) (*domain.Contest, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPublic returns accepted contests only, with optional type filter and
// name substring search.
func (s *ContestService) ListPublic(ctx context.Context, in ports.ListContestsInput) (*ports.ListContestsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.repo.List(ctx, ports.ListContestsFilter{
		Status: domain.StatusAccepted,
		Type:   in.Type,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListContestsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ContestService) ListByCreator(ctx context.Context, creatorEmail string) ([]*domain.Contest, error) {
	return s.repo.ListByCreator(ctx, creatorEmail)
}

// ListAll is the admin view: every status, paginated.
func (s *ContestService) ListAll(ctx context.Context, page, limit int) (*ports.ListContestsResult, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.List(ctx, ports.ListContestsFilter{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	return &ports.ListContestsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// SetStatus applies an admin review decision. Only accepted and rejected
// pass the enum gate, and only a pending contest can receive either;
// completed is reachable solely through DeclareWinner.
func (s *ContestService) SetStatus(ctx context.Context, id, rawStatus string) error {
	status, err := domain.ParseReviewStatus(rawStatus)
	if err != nil {
		return err
	}

	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !contest.Status.CanTransitionTo(status) {
		return domain.ErrInvalidTransition
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}

	metrics.ContestStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().Str("contest_id", id).Str("status", string(status)).Msg("contest status updated")
	return nil
}

// Edit patches a contest on behalf of its creator. Wrong owner and
// non-pending status intentionally share one forbidden error.
func (s *ContestService) Edit(ctx context.Context, id, creatorEmail string, patch ports.ContestPatch) error {
	if err := s.ownedAndPending(ctx, id, creatorEmail); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, patch)
}

// DeleteOwn removes a contest on behalf of its creator, pending only.
func (s *ContestService) DeleteOwn(ctx context.Context, id, creatorEmail string) error {
	if err := s.ownedAndPending(ctx, id, creatorEmail); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteAny is the admin hard delete, valid at any status.
func (s *ContestService) DeleteAny(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeclareWinner moves an accepted contest to completed and records the
// winner. A winner without a submission is recorded anyway, with a warning.
func (s *ContestService) DeclareWinner(ctx context.Context, in ports.DeclareWinnerInput) error {
	contest, err := s.repo.FindByID(ctx, in.ContestID)
	if err != nil {
		return err
	}
	if !contest.OwnedBy(in.CreatorEmail) {
		return domain.ErrForbidden
	}
	if !contest.Status.CanTransitionTo(domain.StatusCompleted) {
		return domain.ErrInvalidTransition
	}

	submitted, err := s.submissions.ExistsForContest(ctx, in.WinnerEmail, in.ContestID)
	if err != nil {
		s.log.Warn().Err(err).Str("contest_id", in.ContestID).Msg("submission lookup failed during winner declaration")
	} else if !submitted {
		s.log.Warn().
			Str("contest_id", in.ContestID).
			Str("winner", in.WinnerEmail).
			Msg("declared winner has no submission on record")
	}

	winner := &domain.Winner{
		Email:      in.WinnerEmail,
		Name:       in.WinnerName,
		Image:      in.WinnerImage,
		DeclaredAt: time.Now().UTC(),
	}
	if err := s.repo.SetWinner(ctx, in.ContestID, winner); err != nil {
		return err
	}

	metrics.WinnersDeclaredTotal.Inc()
	s.log.Info().Str("contest_id", in.ContestID).Str("winner", in.WinnerEmail).Msg("winner declared")
	return nil
}

func (s *ContestService) Winners(ctx context.Context) ([]*domain.Contest, error) {
	return s.repo.Winners(ctx)
}

func (s *ContestService) ownedAndPending(ctx context.Context, id, creatorEmail string) error {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !contest.OwnedBy(creatorEmail) || !contest.Editable() {
		return domain.ErrForbidden
	}
	return nil
}
