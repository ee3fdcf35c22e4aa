// internal/core/domain/summary.go
package domain

// Summary holds the aggregates derived from the current set of item records
type Summary struct {
	TotalItems    int      `json:"total_items"`
	TotalStock    int      `json:"total_stock"`
	LowStockCount int      `json:"low_stock_count"`
	Warehouses    []string `json:"warehouses"`
	Groupings     []string `json:"groupings"`
}

// Summarize computes totals, the low-stock count, and the distinct warehouse
// and grouping facets for the given records. Pure function of its input;
// facet values keep first-seen order.
func Summarize(records []ItemRecord) Summary {
	s := Summary{TotalItems: len(records)}

	seenWarehouses := make(map[string]struct{})
	seenGroupings := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		s.TotalStock += r.InventoryQty
		if r.IsLowStock() {
			s.LowStockCount++
		}
		if _, ok := seenWarehouses[r.WarehouseName]; !ok {
			seenWarehouses[r.WarehouseName] = struct{}{}
			s.Warehouses = append(s.Warehouses, r.WarehouseName)
		}
		if _, ok := seenGroupings[r.MaterialGrouping]; !ok {
			seenGroupings[r.MaterialGrouping] = struct{}{}
			s.Groupings = append(s.Groupings, r.MaterialGrouping)
		}
	}

	return s
}
