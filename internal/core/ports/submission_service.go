package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// SubmitInput carries a participant's entry for a contest.
type SubmitInput struct {
	ContestID string
	Email     string
	Entry     map[string]any
}

// SubmissionService defines use-case operations for contest entries.
type SubmissionService interface {
	// Submit is gated on a prior payment for (email, contest) and allows at
	// most one entry per pair.
	Submit(ctx context.Context, in SubmitInput) (string, error)
	// ListForContest is restricted to the contest's creator.
	ListForContest(ctx context.Context, contestID, callerEmail string) ([]*domain.Submission, error)
}
