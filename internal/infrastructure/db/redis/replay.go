package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayTTL = 24 * time.Hour

// ReplayChecker guards POST /payments against retried requests. A payment
// insert and the matching participation increment are two independent
// writes; the transaction-id key keeps a replay from running them twice.
// Key format: payment:txn:<transaction_id>
type ReplayChecker struct {
	client *redis.Client
}

// NewReplayChecker creates a ReplayChecker wrapping the given Redis client.
func NewReplayChecker(client *redis.Client) *ReplayChecker {
	return &ReplayChecker{client: client}
}

// IsReplay reports whether this transaction id has already been recorded.
func (r *ReplayChecker) IsReplay(ctx context.Context, transactionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(transactionID)).Result()
	if err != nil {
		return false, fmt.Errorf("replay check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this transaction id has been processed (expires after replayTTL).
func (r *ReplayChecker) Mark(ctx context.Context, transactionID string) error {
	return r.client.Set(ctx, r.key(transactionID), "1", replayTTL).Err()
}

func (r *ReplayChecker) key(transactionID string) string {
	return "payment:txn:" + transactionID
}
