package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tallybook/tallybook/pkg/logger"
)

const (
	// DefaultTTL bounds how long a rendered report stays cached. The
	// revision in the key already guarantees freshness; the TTL only
	// reclaims memory for journals that stopped changing.
	DefaultTTL = time.Hour

	// KeyPrefix is the prefix for report cache keys.
	KeyPrefix = "report:"
)

// ReportCache is a Redis-backed cache of rendered trial-balance reports.
// Keys include the journal revision, so a cached document can never be
// stale relative to the journal contents.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewReportCache creates a report cache with the default TTL.
func NewReportCache(client *redis.Client, log *logger.Logger) *ReportCache {
	return &ReportCache{
		client: client,
		ttl:    DefaultTTL,
		logger: log.WithField("component", "report_cache"),
	}
}

func reportKey(journalID uuid.UUID, revision int) string {
	return fmt.Sprintf("%s%s:%d", KeyPrefix, journalID, revision)
}

// Get retrieves a cached report for the journal at the given revision.
func (c *ReportCache) Get(ctx context.Context, journalID uuid.UUID, revision int) (string, bool, error) {
	key := reportKey(journalID, revision)

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "journal_id", journalID, "revision", revision)
		return "", false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "journal_id", journalID, "error", err)
		return "", false, fmt.Errorf("failed to get cached report: %w", err)
	}

	c.logger.Debug("cache hit", "journal_id", journalID, "revision", revision)
	return val, true, nil
}

// Set stores a rendered report for the journal at the given revision.
func (c *ReportCache) Set(ctx context.Context, journalID uuid.UUID, revision int, document string) error {
	key := reportKey(journalID, revision)

	if err := c.client.Set(ctx, key, document, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "journal_id", journalID, "error", err)
		return fmt.Errorf("failed to set cached report: %w", err)
	}
	return nil
}
