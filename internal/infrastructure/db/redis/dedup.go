package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/communityos/eventhub/internal/api/metrics"
)

const dedupTTL = time.Hour

// DedupChecker provides scan replay protection backed by Redis.
// Key format: dedup:<event_id>:<user_id>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact scan has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, eventID, userID string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID, userID, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.CheckinDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.CheckinDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this scan has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, eventID, userID string, ts time.Time) error {
	return d.client.Set(ctx, d.key(eventID, userID, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(eventID, userID string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", eventID, userID, ts.Unix())
}
