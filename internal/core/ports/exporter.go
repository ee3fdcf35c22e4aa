// internal/core/ports/exporter.go
package ports

import (
	"context"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
)

// Exporter defines the tabular export port. Export consumes the full record
// list and produces a single-sheet spreadsheet file, one row per record with
// the fixed column contract. On failure no partial file bytes are returned.
type Exporter interface {
	Export(ctx context.Context, records []domain.ItemRecord) ([]byte, error)
}
