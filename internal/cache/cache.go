package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a small local key-value store with TTL expiry, backed by sqlite so
// values survive restarts. It replaces nothing critical: callers treat a miss
// and an expired entry the same way.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens the cache file.
func Open(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS cache (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at INTEGER NOT NULL
        )`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init cache schema: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Set upserts a value with the current timestamp.
func (c *Cache) Set(key, value string) error {
	_, err := c.db.Exec(`
        INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Get returns the value for key if present and not expired. Expired entries
// are deleted on read.
func (c *Cache) Get(key string) (string, bool) {
	var value string
	var updatedAt int64
	err := c.db.QueryRow(`SELECT value, updated_at FROM cache WHERE key = ?`, key).
		Scan(&value, &updatedAt)
	if err != nil {
		return "", false
	}
	if time.Since(time.UnixMilli(updatedAt)) > c.ttl {
		_, _ = c.db.Exec(`DELETE FROM cache WHERE key = ?`, key)
		return "", false
	}
	return value, true
}

// Delete removes a key.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM cache WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
