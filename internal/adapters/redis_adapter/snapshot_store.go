// internal/adapters/redis/snapshot_store.go
package redis_a

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
)

// DefaultSnapshotKey is the key the full inventory snapshot lives under
const DefaultSnapshotKey = "inventaris:snapshot"

// SnapshotStore persists the inventory snapshot as a single JSON value in
// Redis. The snapshot never expires; each save replaces the previous value
// atomically.
type SnapshotStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// Statically assert that *SnapshotStore implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new Redis-backed snapshot store
func NewSnapshotStore(client *redis.Client, key string, logger *slog.Logger) *SnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotStore{
		client: client,
		key:    key,
		logger: logger.With(slog.String("component", "redis_snapshot_store")),
	}
}

// Load retrieves the persisted snapshot, or ports.ErrNoSnapshot when the key
// is absent.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			s.logger.DebugContext(ctx, "no snapshot present", slog.String("key", s.key))
			return nil, ports.ErrNoSnapshot
		}
		s.logger.ErrorContext(ctx, "failed to load snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.ErrorContext(ctx, "failed to unmarshal snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.String("key", s.key),
		slog.Int("records", len(snapshot.Records)))
	return &snapshot, nil
}

// Save durably replaces the persisted snapshot
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to save snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("key", s.key),
		slog.String("snapshot_id", snapshot.SnapshotID.String()),
		slog.Int("records", len(snapshot.Records)))
	return nil
}
