package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
)

func TestSummarize(t *testing.T) {
	records := []domain.ItemRecord{
		{MaterialCode: "A1", InventoryQty: 5, InitialQty: 100, WarehouseName: "WH-1", MaterialGrouping: "Pulp"},
		{MaterialCode: "B2", InventoryQty: 300, InitialQty: 300, WarehouseName: "WH-2", MaterialGrouping: "Accessories"},
		{MaterialCode: "C3", InventoryQty: 0, InitialQty: 0, WarehouseName: "WH-1", MaterialGrouping: "Pulp"},
	}

	summary := domain.Summarize(records)

	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 305, summary.TotalStock)
	// A1 is low (5 < 10); C3 has InitialQty 0 and is never low (0 is not < 0)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, []string{"WH-1", "WH-2"}, summary.Warehouses, "facets keep first-seen order")
	assert.Equal(t, []string{"Pulp", "Accessories"}, summary.Groupings)
}

func TestSummarize_EmptyInput(t *testing.T) {
	summary := domain.Summarize(nil)

	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, 0, summary.TotalStock)
	assert.Equal(t, 0, summary.LowStockCount)
	assert.Empty(t, summary.Warehouses)
	assert.Empty(t, summary.Groupings)
}

func TestSummarize_SeedDataset(t *testing.T) {
	summary := domain.Summarize(domain.SeedRecords())

	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 3004, summary.TotalStock)
	assert.Equal(t, 0, summary.LowStockCount, "freshly seeded records are at full quantity")
	assert.Equal(t, []string{
		"Pulp Tray (Consumable Material)",
		"Pulp Tray (Finished Product)",
	}, summary.Warehouses)
	assert.Equal(t, []string{"Electrical appliances", "Accessories", "Pulp"}, summary.Groupings)
}

func BenchmarkSummarize(b *testing.B) {
	records := make([]domain.ItemRecord, 0, 1000)
	for i := 0; i < 1000; i++ {
		records = append(records, domain.ItemRecord{
			MaterialCode:     "A1",
			InventoryQty:     i % 50,
			InitialQty:       100,
			WarehouseName:    "WH-1",
			MaterialGrouping: "Pulp",
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.Summarize(records)
	}
}
