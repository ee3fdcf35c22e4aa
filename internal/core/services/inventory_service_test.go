package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
	"github.com/gaoyipack/inventaris-be/internal/core/services"
	"github.com/gaoyipack/inventaris-be/test/helpers"
	"github.com/gaoyipack/inventaris-be/test/mocks"
)

type serviceFixture struct {
	service   *services.InventoryService
	snapshots *mocks.MockSnapshotStore
	exporter  *mocks.MockExporter
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	snapshots := mocks.NewMockSnapshotStore(ctrl)
	exporter := mocks.NewMockExporter(ctrl)

	return &serviceFixture{
		service:   services.NewInventoryService(snapshots, exporter, helpers.TestLogger()),
		snapshots: snapshots,
		exporter:  exporter,
	}
}

// loadWith stubs the store to return the given records and loads them.
func (f *serviceFixture) loadWith(t *testing.T, records ...*domain.ItemRecord) {
	t.Helper()

	values := make([]domain.ItemRecord, 0, len(records))
	for _, r := range records {
		values = append(values, *r)
	}
	snapshot := domain.NewSnapshot(values, helpers.FixedTime())
	f.snapshots.EXPECT().Load(gomock.Any()).Return(snapshot, nil)
	require.NoError(t, f.service.Load(context.Background()))
}

func TestInventoryService_Load_SeedsWhenNoSnapshot(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.snapshots.EXPECT().Load(gomock.Any()).Return(nil, ports.ErrNoSnapshot)
	// The seed dataset is written through so a restart restores it
	f.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.Snapshot) error {
			assert.Len(t, snapshot.Records, 3)
			return nil
		})

	require.NoError(t, f.service.Load(ctx))

	records := f.service.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "9.04.009449", records[0].MaterialCode)
	assert.Equal(t, "9.07.011003", records[1].MaterialCode)
	assert.Equal(t, "1465.Z.0021", records[2].MaterialCode)
	for _, r := range records {
		assert.Equal(t, r.InventoryQty, r.InitialQty)
		assert.Empty(t, r.History)
	}
}

func TestInventoryService_Load_RestoresSnapshot(t *testing.T) {
	f := newServiceFixture(t)

	record := helpers.CreateTestItemRecord()
	require.NoError(t, record.StockOut(40, helpers.FixedTime()))
	f.loadWith(t, record)

	restored, err := f.service.Record("A1")
	require.NoError(t, err)
	assert.Equal(t, 60, restored.InventoryQty)
	assert.Equal(t, 100, restored.InitialQty, "initial quantity is restored verbatim")
	require.Len(t, restored.History, 1)
	assert.Equal(t, domain.MovementOut, restored.History[0].Type)
}

func TestInventoryService_Load_RejectsDuplicateMaterialCode(t *testing.T) {
	f := newServiceFixture(t)

	snapshot := domain.NewSnapshot([]domain.ItemRecord{
		*helpers.CreateTestItemRecord(),
		*helpers.CreateTestItemRecord(),
	}, helpers.FixedTime())
	f.snapshots.EXPECT().Load(gomock.Any()).Return(snapshot, nil)

	err := f.service.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrDuplicateMaterial)
}

func TestInventoryService_Load_WrapsStoreFailure(t *testing.T) {
	f := newServiceFixture(t)

	storeErr := errors.New("connection refused")
	f.snapshots.EXPECT().Load(gomock.Any()).Return(nil, storeErr)

	err := f.service.Load(context.Background())
	require.ErrorIs(t, err, storeErr)
}

func TestInventoryService_StockIn(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())
	f.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	record, err := f.service.StockIn(context.Background(), "A1", ports.StockRequest{Qty: json.Number("20")})
	require.NoError(t, err)

	assert.Equal(t, 120, record.InventoryQty)
	require.Len(t, record.History, 1)
	assert.Equal(t, domain.MovementIn, record.History[0].Type)
	assert.Equal(t, 20, record.History[0].Qty)
}

func TestInventoryService_StockOut_InsufficientStock(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord(func(r *domain.ItemRecord) {
		r.InventoryQty = 5
	}))

	// No Save expectation: a rejected movement must not persist anything
	_, err := f.service.StockOut(context.Background(), "A1", ports.StockRequest{Qty: json.Number("10")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	record, err := f.service.Record("A1")
	require.NoError(t, err)
	assert.Equal(t, 5, record.InventoryQty)
	assert.Empty(t, record.History)
}

func TestInventoryService_QuantityValidation(t *testing.T) {
	tests := []struct {
		name string
		qty  string
	}{
		{name: "missing", qty: ""},
		{name: "non_numeric", qty: "abc"},
		{name: "fractional", qty: "3.5"},
		{name: "zero", qty: "0"},
		{name: "negative", qty: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			f.loadWith(t, helpers.CreateTestItemRecord())

			req := ports.StockRequest{Qty: json.Number(tt.qty)}

			_, err := f.service.StockIn(context.Background(), "A1", req)
			require.ErrorIs(t, err, domain.ErrInvalidQuantity)

			_, err = f.service.StockOut(context.Background(), "A1", req)
			require.ErrorIs(t, err, domain.ErrInvalidQuantity)

			record, err := f.service.Record("A1")
			require.NoError(t, err)
			assert.Equal(t, 100, record.InventoryQty)
			assert.Empty(t, record.History)
		})
	}
}

func TestInventoryService_UnknownMaterialCode(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())
	ctx := context.Background()

	_, err := f.service.StockIn(ctx, "nope", ports.StockRequest{Qty: json.Number("1")})
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = f.service.StockOut(ctx, "nope", ports.StockRequest{Qty: json.Number("1")})
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = f.service.AttachImage(ctx, "nope", ports.ImageRequest{BinaryData: []byte("png")})
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = f.service.Record("nope")
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestInventoryService_PersistFailureIsNonFatal(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())

	f.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	record, err := f.service.StockOut(context.Background(), "A1", ports.StockRequest{Qty: json.Number("30")})
	require.NoError(t, err, "a failed save must not fail the mutation")
	assert.Equal(t, 70, record.InventoryQty)

	// The mutation stands in memory
	current, err := f.service.Record("A1")
	require.NoError(t, err)
	assert.Equal(t, 70, current.InventoryQty)
}

func TestInventoryService_AttachImage(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())
	f.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	ctx := context.Background()

	record, err := f.service.AttachImage(ctx, "A1", ports.ImageRequest{BinaryData: []byte("image bytes")})
	require.NoError(t, err)
	assert.NotEmpty(t, record.Image)

	record, err = f.service.AttachImage(ctx, "A1", ports.ImageRequest{})
	require.NoError(t, err)
	assert.Empty(t, record.Image, "empty payload clears the attachment")
}

// A full movement sequence: partial out drops the record into low stock, an
// oversized out is rejected without side effects, and a stock in recovers it.
func TestInventoryService_MovementSequence(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())
	f.snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	ctx := context.Background()

	record, err := f.service.StockOut(ctx, "A1", ports.StockRequest{Qty: json.Number("95")})
	require.NoError(t, err)
	assert.Equal(t, 5, record.InventoryQty)
	assert.True(t, record.IsLowStock())
	assert.Equal(t, 1, f.service.Summary().LowStockCount)

	_, err = f.service.StockOut(ctx, "A1", ports.StockRequest{Qty: json.Number("10")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	record, err = f.service.StockIn(ctx, "A1", ports.StockRequest{Qty: json.Number("20")})
	require.NoError(t, err)
	assert.Equal(t, 25, record.InventoryQty)
	assert.False(t, record.IsLowStock())

	require.Len(t, record.History, 2)
	assert.Equal(t, domain.MovementOut, record.History[0].Type)
	assert.Equal(t, 95, record.History[0].Qty)
	assert.Equal(t, domain.MovementIn, record.History[1].Type)
	assert.Equal(t, 20, record.History[1].Qty)
}

func TestInventoryService_Snapshot(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t,
		helpers.CreateTestItemRecord(),
		helpers.CreateTestItemRecord(func(r *domain.ItemRecord) {
			r.MaterialCode = "B2"
			r.InventoryQty = 50
			r.InitialQty = 50
		}),
	)

	snapshot := f.service.Snapshot()
	require.NotNil(t, snapshot)
	assert.NotZero(t, snapshot.SnapshotID)
	assert.False(t, snapshot.SavedAt.IsZero())
	require.Len(t, snapshot.Records, 2)
	assert.Equal(t, "A1", snapshot.Records[0].MaterialCode)
	assert.Equal(t, "B2", snapshot.Records[1].MaterialCode)

	// The snapshot is detached from live state
	snapshot.Records[0].InventoryQty = 0
	record, err := f.service.Record("A1")
	require.NoError(t, err)
	assert.Equal(t, 100, record.InventoryQty)
}

func TestInventoryService_SummaryAndFilter(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t,
		helpers.CreateTestItemRecord(),
		helpers.CreateTestItemRecord(func(r *domain.ItemRecord) {
			r.MaterialCode = "B2"
			r.MaterialName = "Carton Filler"
			r.WarehouseName = "Second Warehouse"
			r.MaterialGrouping = "Accessories"
			r.InventoryQty = 4
			r.InitialQty = 100
		}),
	)

	summary := f.service.Summary()
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 104, summary.TotalStock)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, []string{"Main Warehouse", "Second Warehouse"}, summary.Warehouses)

	matched := f.service.Filter(domain.FilterParams{SearchText: "carton"})
	require.Len(t, matched, 1)
	assert.Equal(t, "B2", matched[0].MaterialCode)
}

func TestInventoryService_Export(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())

	f.exporter.EXPECT().Export(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.ItemRecord) ([]byte, error) {
			require.Len(t, records, 1)
			assert.Equal(t, "A1", records[0].MaterialCode)
			return []byte("xlsx bytes"), nil
		})

	data, err := f.service.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx bytes"), data)
}

func TestInventoryService_Export_Failure(t *testing.T) {
	f := newServiceFixture(t)
	f.loadWith(t, helpers.CreateTestItemRecord())

	exportErr := errors.New("cannot build workbook")
	f.exporter.EXPECT().Export(gomock.Any(), gomock.Any()).Return(nil, exportErr)

	_, err := f.service.Export(context.Background())
	require.ErrorIs(t, err, exportErr)
}
