package cache

import (
	"time"

	"hivewatch/internal/logging"
)

const lastUpdatePrefix = "last_update:"

// SeedStore adapts the cache to the monitor's cross-restart staleness
// seeding. Read/write failures degrade to optimistic seeding.
type SeedStore struct {
	cache  *Cache
	logger *logging.Logger
}

// NewSeedStore wraps a cache for staleness seeding.
func NewSeedStore(c *Cache, logger *logging.Logger) *SeedStore {
	return &SeedStore{cache: c, logger: logger}
}

// LastUpdate returns the cached last-update time for a hive, if any.
func (s *SeedStore) LastUpdate(hiveID string) (time.Time, bool) {
	v, ok := s.cache.Get(lastUpdatePrefix + hiveID)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		s.logger.Warnf("Invalid cached last update for hive %s: %v", hiveID, err)
		return time.Time{}, false
	}
	return t, true
}

// SetLastUpdate records the last-update time for a hive.
func (s *SeedStore) SetLastUpdate(hiveID string, t time.Time) {
	if err := s.cache.Set(lastUpdatePrefix+hiveID, t.Format(time.RFC3339Nano)); err != nil {
		s.logger.Errorf("Cache last update failed for hive %s: %v", hiveID, err)
	}
}
