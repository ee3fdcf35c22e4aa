package excel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/gaoyipack/inventaris-be/internal/adapters/excel"
	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/test/helpers"
)

func cellValues(t *testing.T, sheet *xlsx.Sheet, rowIdx, count int) []string {
	t.Helper()

	row, err := sheet.Row(rowIdx)
	require.NoError(t, err)

	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		cell := row.GetCell(i)
		values = append(values, cell.Value)
	}
	return values
}

func TestExporter_Export(t *testing.T) {
	exporter := excel.NewExporter(helpers.TestLogger())

	records := []domain.ItemRecord{
		*helpers.CreateTestItemRecord(func(r *domain.ItemRecord) {
			r.InventoryQty = 25
			r.InitialQty = 25
		}),
		*helpers.CreateTestItemRecord(func(r *domain.ItemRecord) {
			r.MaterialCode = "B2"
			r.MaterialName = "Second Material"
			r.InventoryQty = 3000
			r.InitialQty = 3000
			r.Brand = "Gaoyi"
		}),
	}

	data, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)

	sheet, ok := file.Sheet[excel.SheetName]
	require.True(t, ok, "export must contain the %q worksheet", excel.SheetName)
	assert.Equal(t, len(records)+1, sheet.MaxRow)

	assert.Equal(t, excel.Headers, cellValues(t, sheet, 0, len(excel.Headers)))

	first := cellValues(t, sheet, 1, len(excel.Headers))
	assert.Equal(t, "A1", first[0])
	assert.Equal(t, "Test Material", first[1])
	assert.Equal(t, "25", first[6])
	assert.Equal(t, "25", first[7])
	assert.Equal(t, "3", first[8], "safety stock is the ceiling of 10 percent of the initial quantity")

	second := cellValues(t, sheet, 2, len(excel.Headers))
	assert.Equal(t, "B2", second[0])
	assert.Equal(t, "3000", second[6])
	assert.Equal(t, "300", second[8])
	assert.Equal(t, "Gaoyi", second[14])
}

func TestExporter_Export_EmptyRecordList(t *testing.T) {
	exporter := excel.NewExporter(helpers.TestLogger())

	data, err := exporter.Export(context.Background(), nil)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)

	sheet, ok := file.Sheet[excel.SheetName]
	require.True(t, ok)
	assert.Equal(t, 1, sheet.MaxRow, "header row only")
}

func TestExporter_HeaderContract(t *testing.T) {
	require.Len(t, excel.Headers, 19)
	assert.Equal(t, "Material Code", excel.Headers[0])
	assert.Equal(t, "Safety Stock (10%)", excel.Headers[8])
	assert.Equal(t, "Master Data Property", excel.Headers[18])
}
