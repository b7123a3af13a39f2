package ports

import (
	"context"

	"github.com/contesthub/backend/internal/core/domain"
)

// SubmissionRepository defines persistence operations for contest entries.
// Insert must fail with domain.ErrDuplicateSubmission when an entry already
// exists for the same (contest, email) pair.
type SubmissionRepository interface {
	Insert(ctx context.Context, s *domain.Submission) (string, error)
	ListByContest(ctx context.Context, contestID string) ([]*domain.Submission, error)
	ExistsForContest(ctx context.Context, email, contestID string) (bool, error)
}
