// internal/core/ports/inventory_service.go
package ports

import (
	"context"
	"encoding/json"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
)

// StockRequest is the input shape for stock-in and stock-out operations. Qty
// is kept as a json.Number so that absent, non-numeric, and fractional input
// reaches the store and is rejected there with ErrInvalidQuantity instead of
// failing silently at the decoding layer.
type StockRequest struct {
	Qty json.Number `json:"qty"`
}

// ImageRequest is the input shape for image attachment
type ImageRequest struct {
	BinaryData []byte `json:"binary_data"`
}

// InventoryService defines the application service port for the inventory
// store. It is the only component permitted to mutate quantities or append
// ledger entries; every successful mutation writes through to the
// SnapshotStore.
type InventoryService interface {
	Load(ctx context.Context) error
	StockIn(ctx context.Context, materialCode string, req StockRequest) (*domain.ItemRecord, error)
	StockOut(ctx context.Context, materialCode string, req StockRequest) (*domain.ItemRecord, error)
	AttachImage(ctx context.Context, materialCode string, req ImageRequest) (*domain.ItemRecord, error)
	Record(materialCode string) (*domain.ItemRecord, error)
	Records() []domain.ItemRecord
	Snapshot() *domain.Snapshot
	Summary() domain.Summary
	Filter(params domain.FilterParams) []domain.ItemRecord
	Export(ctx context.Context) ([]byte, error)
}
