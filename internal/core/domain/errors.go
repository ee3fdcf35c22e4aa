// internal/core/domain/errors.go
package domain

import "errors"

// Sentinel errors returned by inventory store operations. Callers match them
// with errors.Is; the wrapping message carries the offending values.
var (
	// ErrInvalidQuantity is returned when a stock movement quantity is
	// absent, non-numeric, zero, or negative.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInsufficientStock is returned when a stock-out requests more than
	// the current on-hand quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrMaterialNotFound is returned when no record exists for the
	// requested material code.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrDuplicateMaterial is returned when a snapshot or seed dataset
	// contains the same material code twice.
	ErrDuplicateMaterial = errors.New("duplicate material code")
)
