package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/report"
	"github.com/jhoicas/bodega-api/internal/application/shipment"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/infrastructure/manifest"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-api/internal/infrastructure/xlsx"
)

type env struct {
	items     *inventory.ItemUseCase
	shipments *shipment.UseCase
	reports   *report.UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	e := &env{
		items:     inventory.NewItemUseCase(store, store.ItemRepository(), store.ItemAssignmentRepository()),
		shipments: shipment.NewUseCase(store, store.ShipmentRepository()),
	}
	e.reports = report.NewUseCase(e.items, e.shipments,
		xlsx.NewExcelizeInventoryWorkbook(), pdf.NewMarotoShipmentPDF("Bodega"), manifest.NewBuilder())
	return e
}

// seed Chairs(100)/Beds(55)/Tables(1) y los tres envíos de referencia; Tables queda eliminado.
func (e *env) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	ids := map[string]int64{}
	for _, it := range []dto.CreateItemRequest{{Name: "Chairs", Count: 100}, {Name: "Beds", Count: 55}, {Name: "Tables", Count: 1}} {
		out, err := e.items.Create(ctx, it)
		require.NoError(t, err)
		ids[it.Name] = out.ID
	}
	l := func(name string, n int64) dto.ShipmentItemRequest {
		return dto.ShipmentItemRequest{ItemID: ids[name], Count: n}
	}
	for _, s := range []dto.CreateShipmentRequest{
		{Name: "Test", Destination: "Heidelberg", Items: []dto.ShipmentItemRequest{l("Chairs", 50)}},
		{Name: "Test2", Destination: "Heidelberg2", Items: []dto.ShipmentItemRequest{l("Chairs", 5), l("Beds", 10)}},
		{Name: "Test3", Destination: "Heidelberg3", Items: []dto.ShipmentItemRequest{l("Chairs", 10), l("Beds", 2), l("Tables", 1)}},
	} {
		_, err := e.shipments.Create(ctx, s)
		require.NoError(t, err)
	}
	require.NoError(t, e.items.MarkDeleted(ctx, ids["Tables"], "agotado"))
}

func TestShipmentsCSV_TresEnvios(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out, err := e.reports.ShipmentsCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shipment,destination,item_name,count\n"+
		"Test,Heidelberg,Chairs,50\n"+
		"Test2,Heidelberg2,Chairs,5\n"+
		"Test2,Heidelberg2,Beds,10\n"+
		"Test3,Heidelberg3,Chairs,10\n"+
		"Test3,Heidelberg3,Beds,2\n"+
		"Test3,Heidelberg3,Tables,1\n", string(out))
}

func TestInventoryCSV_ActivoYEliminado(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seed(t)

	out, err := e.reports.InventoryCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id,name,count\n1,Chairs,35\n2,Beds,43\n", string(out))

	out, err = e.reports.DeletedInventoryCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id,name,count,comment\n3,Tables,0,agotado\n", string(out))
}

func TestInventoryXLSX(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	data, err := e.reports.InventoryXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsx.SheetDeleted)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "name", "count", "comment"}, {"3", "Tables", "0", "agotado"}}, rows)
}

func TestShipmentsXML(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	data, digest, err := e.reports.ShipmentsXML(context.Background())
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	assert.Equal(t, "3", doc.Root().SelectAttrValue("shipments", ""))
	assert.Equal(t, "78", doc.Root().SelectAttrValue("units", ""))
}

func TestShipmentPDF(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seed(t)

	data, err := e.reports.ShipmentPDF(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	_, err = e.reports.ShipmentPDF(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
