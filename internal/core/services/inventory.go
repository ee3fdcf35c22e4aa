// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
)

// InventoryService holds the authoritative in-memory set of item records,
// keyed by material code, and owns all quantity mutations. Mutations are
// serialized behind a mutex so the ledger-consistency invariant survives
// concurrent callers. Every successful mutation writes a fresh full snapshot
// through to the snapshot store; a failed save is reported as a warning and
// never rolls back the in-memory state.
type InventoryService struct {
	mu        sync.Mutex
	records   map[string]*domain.ItemRecord
	order     []string
	snapshots ports.SnapshotStore
	exporter  ports.Exporter
	logger    *slog.Logger
	now       func() time.Time
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(snapshots ports.SnapshotStore, exporter ports.Exporter, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		records:   make(map[string]*domain.ItemRecord),
		snapshots: snapshots,
		exporter:  exporter,
		logger:    logger.With(slog.String("service", "inventory")),
		now:       time.Now,
	}
}

// Load replaces the in-memory collection from the persisted snapshot, or
// seeds the fixed initial dataset when no snapshot exists. The seed dataset
// is written through immediately so a subsequent Load restores it.
func (s *InventoryService) Load(ctx context.Context) error {
	snapshot, err := s.snapshots.Load(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		err = s.replaceLocked(snapshot.Records)
		s.mu.Unlock()
		if err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "restored inventory from snapshot",
			slog.String("snapshot_id", snapshot.SnapshotID.String()),
			slog.Int("records", len(snapshot.Records)))
		return nil

	case err == ports.ErrNoSnapshot:
		seed := domain.SeedRecords()
		s.mu.Lock()
		if err := s.replaceLocked(seed); err != nil {
			s.mu.Unlock()
			return err
		}
		s.persistLocked(ctx)
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "seeded initial inventory dataset",
			slog.Int("records", len(seed)))
		return nil

	default:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
}

// replaceLocked swaps in a new record set, enforcing material code
// uniqueness. Caller holds the mutex.
func (s *InventoryService) replaceLocked(records []domain.ItemRecord) error {
	byCode := make(map[string]*domain.ItemRecord, len(records))
	order := make([]string, 0, len(records))

	for i := range records {
		r := &records[i]
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid record %q: %w", r.MaterialCode, err)
		}
		if _, exists := byCode[r.MaterialCode]; exists {
			return fmt.Errorf("material code %q: %w", r.MaterialCode, domain.ErrDuplicateMaterial)
		}
		clone := r.Clone()
		if clone.History == nil {
			clone.History = []domain.LedgerEntry{}
		}
		byCode[clone.MaterialCode] = &clone
		order = append(order, clone.MaterialCode)
	}

	s.records = byCode
	s.order = order
	return nil
}

// StockIn increases the on-hand quantity of the addressed record and appends
// an IN ledger entry. The quantity must parse as a positive integer.
func (s *InventoryService) StockIn(ctx context.Context, materialCode string, req ports.StockRequest) (*domain.ItemRecord, error) {
	qty, err := parseQty(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[materialCode]
	if !ok {
		return nil, fmt.Errorf("material code %q: %w", materialCode, domain.ErrMaterialNotFound)
	}

	if err := record.StockIn(qty, s.now()); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock in",
		slog.String("material_code", materialCode),
		slog.Int("qty", qty),
		slog.Int("inventory_qty", record.InventoryQty))

	s.persistLocked(ctx)
	result := record.Clone()
	return &result, nil
}

// StockOut decreases the on-hand quantity of the addressed record and
// appends an OUT ledger entry. The quantity must parse as a positive integer
// no greater than the current on-hand quantity.
func (s *InventoryService) StockOut(ctx context.Context, materialCode string, req ports.StockRequest) (*domain.ItemRecord, error) {
	qty, err := parseQty(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[materialCode]
	if !ok {
		return nil, fmt.Errorf("material code %q: %w", materialCode, domain.ErrMaterialNotFound)
	}

	if err := record.StockOut(qty, s.now()); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock out",
		slog.String("material_code", materialCode),
		slog.Int("qty", qty),
		slog.Int("inventory_qty", record.InventoryQty))

	s.persistLocked(ctx)
	result := record.Clone()
	return &result, nil
}

// AttachImage unconditionally replaces the record's image attachment
func (s *InventoryService) AttachImage(ctx context.Context, materialCode string, req ports.ImageRequest) (*domain.ItemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[materialCode]
	if !ok {
		return nil, fmt.Errorf("material code %q: %w", materialCode, domain.ErrMaterialNotFound)
	}

	record.AttachImage(req.BinaryData)

	s.logger.InfoContext(ctx, "image attached",
		slog.String("material_code", materialCode),
		slog.Int("bytes", len(req.BinaryData)))

	s.persistLocked(ctx)
	result := record.Clone()
	return &result, nil
}

// Record returns a copy of the record with the given material code
func (s *InventoryService) Record(materialCode string) (*domain.ItemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[materialCode]
	if !ok {
		return nil, fmt.Errorf("material code %q: %w", materialCode, domain.ErrMaterialNotFound)
	}

	result := record.Clone()
	return &result, nil
}

// Records returns copies of all records in first-seen order
func (s *InventoryService) Records() []domain.ItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordsLocked()
}

func (s *InventoryService) recordsLocked() []domain.ItemRecord {
	records := make([]domain.ItemRecord, 0, len(s.order))
	for _, code := range s.order {
		records = append(records, s.records[code].Clone())
	}
	return records
}

// Snapshot produces an immutable serializable view of the full current state
func (s *InventoryService) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewSnapshot(s.recordsLocked(), s.now())
}

// Summary recomputes the derived aggregates from the current state
func (s *InventoryService) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.recordsLocked())
}

// Filter returns the visible subset of records for the given criteria
func (s *InventoryService) Filter(params domain.FilterParams) []domain.ItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FilterRecords(s.recordsLocked(), params)
}

// Export serializes the full current record list, not the filtered view
func (s *InventoryService) Export(ctx context.Context) ([]byte, error) {
	data, err := s.exporter.Export(ctx, s.Records())
	if err != nil {
		return nil, fmt.Errorf("failed to export inventory: %w", err)
	}

	s.logger.InfoContext(ctx, "inventory exported",
		slog.Int("bytes", len(data)))
	return data, nil
}

// persistLocked writes the full current state through to the snapshot store.
// Durability is best-effort per request: a failure is surfaced as a warning
// and the in-memory mutation stands. Caller holds the mutex.
func (s *InventoryService) persistLocked(ctx context.Context) {
	snapshot := domain.NewSnapshot(s.recordsLocked(), s.now())
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.logger.WarnContext(ctx, "failed to persist snapshot",
			slog.String("snapshot_id", snapshot.SnapshotID.String()),
			slog.String("error", err.Error()))
	}
}

// parseQty validates the request quantity. Absent, non-numeric, fractional,
// zero, and negative values are all rejected with ErrInvalidQuantity before
// any state is touched.
func parseQty(req ports.StockRequest) (int, error) {
	raw := req.Qty.String()
	if raw == "" {
		return 0, fmt.Errorf("quantity is missing: %w", domain.ErrInvalidQuantity)
	}

	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not an integer: %w", raw, domain.ErrInvalidQuantity)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("quantity %d is not positive: %w", qty, domain.ErrInvalidQuantity)
	}
	return qty, nil
}
