package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PageFox/internal/pkg/cache"
)

const (
	cacheKeySnapshot = "analytics:snapshot:user:%d:scope:%s"

	// snapshotCacheTTL trades dashboard freshness for load: aggregation runs
	// several queries and dashboards poll.
	snapshotCacheTTL = time.Minute
)

func snapshotCacheKey(userID uint, scope string) string {
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf(cacheKeySnapshot, userID, scope)
}

// CachedSnapshot returns the cached snapshot for a user and scope, or nil on
// a miss. Cache failures count as misses, never as errors.
func CachedSnapshot(userID uint, scope string) *Snapshot {
	raw, err := cache.Get(snapshotCacheKey(userID, scope))
	if err != nil {
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Warnf("[Analytics] dropping undecodable cached snapshot: %v", err)
		return nil
	}
	return &snapshot
}

// StoreSnapshot caches a freshly aggregated snapshot. Best effort.
func StoreSnapshot(userID uint, scope string, snapshot *Snapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := cache.Set(snapshotCacheKey(userID, scope), raw, snapshotCacheTTL); err != nil {
		log.Warnf("[Analytics] snapshot cache write failed: %v", err)
	}
}
