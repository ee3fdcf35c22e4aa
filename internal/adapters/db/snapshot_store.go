// internal/adapters/db/snapshot_store.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
)

// snapshotRowID pins the snapshot to a single row; every save replaces it
const snapshotRowID = 1

// SnapshotStore persists the inventory snapshot as a single JSONB row in
// PostgreSQL. The table keeps exactly one row; each save upserts it, so a
// failed save leaves the previous snapshot intact.
type SnapshotStore struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *SnapshotStore implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new PostgreSQL-backed snapshot store
func NewSnapshotStore(db *Database, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{
		db:     db,
		logger: logger.With(slog.String("component", "pg_snapshot_store")),
	}
}

// Load retrieves the persisted snapshot, or ports.ErrNoSnapshot when the
// table is empty.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("data").
		From("inventory_snapshots").
		Where(squirrel.Eq{"id": snapshotRowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var data []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.DebugContext(ctx, "no snapshot present")
			return nil, ports.ErrNoSnapshot
		}
		s.logger.ErrorContext(ctx, "failed to load snapshot",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.Int("records", len(snapshot.Records)))
	return &snapshot, nil
}

// Save durably replaces the persisted snapshot
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	query, args, err := squirrel.
		Insert("inventory_snapshots").
		Columns("id", "snapshot_id", "saved_at", "data").
		Values(snapshotRowID, snapshot.SnapshotID, snapshot.SavedAt, data).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			snapshot_id = EXCLUDED.snapshot_id,
			saved_at = EXCLUDED.saved_at,
			data = EXCLUDED.data`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "failed to save snapshot",
			slog.String("snapshot_id", snapshot.SnapshotID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("snapshot_id", snapshot.SnapshotID.String()),
		slog.Int("records", len(snapshot.Records)))
	return nil
}
