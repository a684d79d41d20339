// Package cache stores the computed dashboard snapshot in Redis so repeat
// loads within the TTL skip the full fetch-and-aggregate cycle. The cache
// is strictly optional: every method on a disabled cache is a no-op, and a
// Redis failure is treated as a miss, never as a request failure.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "dashboard:snapshot"

// Snapshot caches the most recent dashboard view-model.
type Snapshot struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a snapshot cache. A nil client yields a disabled cache.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Snapshot {
	return &Snapshot{client: client, ttl: ttl, log: log}
}

// Enabled reports whether a Redis client is configured.
func (s *Snapshot) Enabled() bool {
	return s != nil && s.client != nil
}

// Get returns the cached dashboard, if present and decodable.
func (s *Snapshot) Get(ctx context.Context) (transport.Dashboard, bool) {
	if !s.Enabled() {
		return transport.Dashboard{}, false
	}

	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("snapshot cache read failed", "error", err)
		}
		return transport.Dashboard{}, false
	}

	var dash transport.Dashboard
	if err := json.Unmarshal(data, &dash); err != nil {
		s.log.Warn("snapshot cache decode failed", "error", err)
		return transport.Dashboard{}, false
	}

	return dash, true
}

// Set stores the dashboard under the configured TTL. Failures are logged
// and swallowed; the caller already has the computed result.
func (s *Snapshot) Set(ctx context.Context, dash transport.Dashboard) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(dash)
	if err != nil {
		s.log.Warn("snapshot cache encode failed", "error", err)
		return
	}

	if err := s.client.Set(ctx, snapshotKey, data, s.ttl).Err(); err != nil {
		s.log.Warn("snapshot cache write failed", "error", err)
	}
}

// Invalidate drops the cached snapshot.
func (s *Snapshot) Invalidate(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		s.log.Warn("snapshot cache invalidate failed", "error", err)
	}
}
