// Package cache is a two-tier TTL cache for API payloads: a small in-process
// map in front of a SQLite table, so species and move data survive restarts
// without hammering PokeAPI.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries (expires_at);
`

// memoryTTL is deliberately shorter than the persistent TTL; the map tier
// only exists to absorb request bursts.
const memoryTTL = 5 * time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type Store struct {
	db         *sql.DB
	defaultTTL time.Duration
	logger     zerolog.Logger

	mu     sync.Mutex
	memory map[string]memoryEntry
}

// Open creates or opens the cache database at path and readies the schema.
func Open(path string, defaultTTL time.Duration, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("cache: empty database path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}

	// sqlite handles one writer at a time; a single connection sidesteps
	// SQLITE_BUSY under concurrent handler traffic
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}

	return &Store{
		db:         db,
		defaultTTL: defaultTTL,
		logger:     logger.With().Str("component", "cache").Logger(),
		memory:     make(map[string]memoryEntry),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the cached value for key into out and reports whether a
// live entry existed. Expired rows read as misses and are left for Cleanup.
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	if raw, ok := s.memoryGet(key); ok {
		s.logger.Debug().Str("key", key).Msg("memory cache hit")
		return true, json.Unmarshal(raw, out)
	}

	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?",
		key, time.Now().Unix(),
	).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	s.memorySet(key, raw)
	s.logger.Debug().Str("key", key).Msg("cache hit")

	return true, json.Unmarshal(raw, out)
}

// Set stores value under key with the given TTL; ttl 0 uses the default.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?) "+
			"ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at",
		key, raw, time.Now().Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}

	s.memorySet(key, raw)

	return nil
}

// Delete removes key from both tiers.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.memory, key)
	s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}

	return nil
}

// Cleanup drops every expired row and memory entry, returning how many
// persistent rows went away.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	for key, entry := range s.memory {
		if now.After(entry.expiresAt) {
			delete(s.memory, key)
		}
	}
	s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("cache: cleanup: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("cleaned up expired cache entries")
	}

	return removed, nil
}

// Size counts live persistent entries.
func (s *Store) Size(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cache_entries WHERE expires_at > ?",
		time.Now().Unix(),
	).Scan(&count)

	return count, err
}

func (s *Store) memoryGet(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.memory[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.memory, key)
		return nil, false
	}

	return entry.value, true
}

func (s *Store) memorySet(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory[key] = memoryEntry{value: value, expiresAt: time.Now().Add(memoryTTL)}
}
