// internal/adapters/excel/exporter.go
package excel

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tealeg/xlsx/v3"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
)

// SheetName is the single worksheet the export is written to
const SheetName = "Inventaris"

// Headers is the fixed column contract, in order. Both the order and the
// exact header strings are relied on by downstream consumers of the export
// file and must not change.
var Headers = []string{
	"Material Code",
	"Material Name",
	"Specification",
	"Warehouse",
	"Lot No.",
	"Stock Unit",
	"Inventory Qty",
	"Initial Qty",
	"Safety Stock (10%)",
	"Inventory Status",
	"Inventory Org.",
	"Type of Owner",
	"Owner Name",
	"Customer P/N",
	"Brand",
	"Gram",
	"Material Grouping",
	"Customer End PN",
	"Master Data Property",
}

// Exporter renders the inventory record list as a single-sheet xlsx file
type Exporter struct {
	logger *slog.Logger
}

// Statically assert that *Exporter implements the Exporter interface.
var _ ports.Exporter = (*Exporter)(nil)

// NewExporter creates a new xlsx exporter
func NewExporter(logger *slog.Logger) *Exporter {
	return &Exporter{
		logger: logger.With(slog.String("component", "excel_exporter")),
	}
}

// Export produces the xlsx file bytes, one row per record. On any failure no
// partial file is returned.
func (e *Exporter) Export(ctx context.Context, records []domain.ItemRecord) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range Headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for i := range records {
		dataRow := sheet.AddRow()
		for _, value := range recordToRow(&records[i]) {
			dataRow.AddCell().Value = value
		}
	}

	for i := range Headers {
		sheet.SetColWidth(i, i, 18)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write xlsx file to buffer: %w", err)
	}

	e.logger.DebugContext(ctx, "xlsx export generated",
		slog.Int("rows", len(records)),
		slog.Int("bytes", buffer.Len()))

	return buffer.Bytes(), nil
}

// recordToRow converts a record to cell values matching Headers
func recordToRow(r *domain.ItemRecord) []string {
	return []string{
		r.MaterialCode,
		r.MaterialName,
		r.Specification,
		r.WarehouseName,
		r.LotNo,
		r.StockUnit,
		strconv.Itoa(r.InventoryQty),
		strconv.Itoa(r.InitialQty),
		strconv.Itoa(r.SafetyStock()),
		r.InventoryStatus,
		r.InventoryOrg,
		r.TypeOfOwner,
		r.OwnerName,
		r.CustomerPN,
		r.Brand,
		r.Gram,
		r.MaterialGrouping,
		r.CustomerEndPN,
		r.MasterDataProperty,
	}
}
