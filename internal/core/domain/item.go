// internal/core/domain/item.go
package domain

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement
type MovementType string

// Movement constants
const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// lowStockRatio is the fixed fraction of InitialQty below which a record
// counts as low stock.
var lowStockRatio = decimal.NewFromFloat(0.10)

// LedgerEntry represents a single recorded stock movement
type LedgerEntry struct {
	EntryID uuid.UUID    `json:"entry_id"`
	Type    MovementType `json:"type"`
	Qty     int          `json:"qty"`
	Date    time.Time    `json:"date"`
}

// SignedQty returns the entry quantity with its movement sign applied
// (positive for IN, negative for OUT).
func (e LedgerEntry) SignedQty() int {
	if e.Type == MovementOut {
		return -e.Qty
	}
	return e.Qty
}

// ItemRecord represents a single trackable inventory line. MaterialCode is
// the record's stable identity within the store. History is append-only;
// insertion order is chronological order.
type ItemRecord struct {
	MaterialCode       string        `json:"material_code"`
	MaterialName       string        `json:"material_name"`
	Specification      string        `json:"specification"`
	WarehouseName      string        `json:"warehouse_name"`
	LotNo              string        `json:"lot_no"`
	StockUnit          string        `json:"stock_unit"`
	InventoryQty       int           `json:"inventory_qty"`
	InitialQty         int           `json:"initial_qty"`
	InventoryStatus    string        `json:"inventory_status"`
	InventoryOrg       string        `json:"inventory_org"`
	TypeOfOwner        string        `json:"type_of_owner"`
	OwnerName          string        `json:"owner_name"`
	CustomerPN         string        `json:"customer_pn"`
	Brand              string        `json:"brand"`
	Gram               string        `json:"gram"`
	MaterialGrouping   string        `json:"material_grouping"`
	CustomerEndPN      string        `json:"customer_end_pn"`
	MasterDataProperty string        `json:"master_data_property"`
	History            []LedgerEntry `json:"history"`
	Image              string        `json:"image,omitempty"`
}

// Validate performs domain validation on the item record
func (r *ItemRecord) Validate() error {
	if r.MaterialCode == "" {
		return fmt.Errorf("material_code is required")
	}
	if r.InventoryQty < 0 {
		return fmt.Errorf("inventory_qty cannot be negative")
	}
	if r.InitialQty < 0 {
		return fmt.Errorf("initial_qty cannot be negative")
	}
	return nil
}

// StockIn increases the on-hand quantity and appends an IN ledger entry.
// The record is left untouched when qty is not a positive integer.
func (r *ItemRecord) StockIn(qty int, at time.Time) error {
	if qty <= 0 {
		return fmt.Errorf("stock-in of %d for %s: %w", qty, r.MaterialCode, ErrInvalidQuantity)
	}

	r.InventoryQty += qty
	r.History = append(r.History, LedgerEntry{
		EntryID: uuid.New(),
		Type:    MovementIn,
		Qty:     qty,
		Date:    at,
	})
	return nil
}

// StockOut decreases the on-hand quantity and appends an OUT ledger entry.
// The record is left untouched when qty is not a positive integer or exceeds
// the current quantity, so InventoryQty never goes below zero.
func (r *ItemRecord) StockOut(qty int, at time.Time) error {
	if qty <= 0 {
		return fmt.Errorf("stock-out of %d for %s: %w", qty, r.MaterialCode, ErrInvalidQuantity)
	}
	if qty > r.InventoryQty {
		return fmt.Errorf("stock-out of %d for %s with %d on hand: %w",
			qty, r.MaterialCode, r.InventoryQty, ErrInsufficientStock)
	}

	r.InventoryQty -= qty
	r.History = append(r.History, LedgerEntry{
		EntryID: uuid.New(),
		Type:    MovementOut,
		Qty:     qty,
		Date:    at,
	})
	return nil
}

// AttachImage replaces the record's image attachment with the base64
// encoding of data. The previous value is discarded; empty data clears the
// attachment. Content type and size are not validated.
func (r *ItemRecord) AttachImage(data []byte) {
	if len(data) == 0 {
		r.Image = ""
		return
	}
	r.Image = base64.StdEncoding.EncodeToString(data)
}

// LedgerBalance returns the signed sum of all ledger entries. The invariant
// InitialQty + LedgerBalance() == InventoryQty holds after every operation.
func (r *ItemRecord) LedgerBalance() int {
	balance := 0
	for _, e := range r.History {
		balance += e.SignedQty()
	}
	return balance
}

// SafetyStock returns the low-stock alert threshold, the ceiling of 10% of
// the record's original quantity.
func (r *ItemRecord) SafetyStock() int {
	return int(decimal.NewFromInt(int64(r.InitialQty)).Mul(lowStockRatio).Ceil().IntPart())
}

// IsLowStock reports whether the current quantity is strictly below 10% of
// the original quantity. A record with InitialQty == 0 is never low stock;
// 0 is never less than 0.
func (r *ItemRecord) IsLowStock() bool {
	threshold := decimal.NewFromInt(int64(r.InitialQty)).Mul(lowStockRatio)
	return decimal.NewFromInt(int64(r.InventoryQty)).LessThan(threshold)
}

// Clone returns a deep copy of the record, including its ledger
func (r *ItemRecord) Clone() ItemRecord {
	clone := *r
	if r.History != nil {
		clone.History = make([]LedgerEntry, len(r.History))
		copy(clone.History, r.History)
	}
	return clone
}

// Snapshot is the full serializable state of the inventory store at a point
// in time, used for persistence and export.
type Snapshot struct {
	SnapshotID uuid.UUID    `json:"snapshot_id"`
	SavedAt    time.Time    `json:"saved_at"`
	Records    []ItemRecord `json:"records"`
}

// NewSnapshot builds a snapshot with a fresh surrogate ID over deep copies
// of the given records.
func NewSnapshot(records []ItemRecord, at time.Time) *Snapshot {
	copies := make([]ItemRecord, 0, len(records))
	for i := range records {
		copies = append(copies, records[i].Clone())
	}
	return &Snapshot{
		SnapshotID: uuid.New(),
		SavedAt:    at,
		Records:    copies,
	}
}
