// internal/core/ports/snapshot_store.go
package ports

import (
	"context"
	"errors"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
)

// ErrNoSnapshot is returned by Load when no snapshot has been persisted yet
var ErrNoSnapshot = errors.New("no snapshot persisted")

// SnapshotStore defines the persistence port for the inventory store. The
// snapshot is the full serialized record list including ledgers and image
// data. A Save failure must leave any previously persisted snapshot intact.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}
