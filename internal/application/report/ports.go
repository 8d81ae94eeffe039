package report

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// InventoryReader lecturas del inventario que alimentan los reportes.
type InventoryReader interface {
	List(ctx context.Context) ([]dto.ItemResponse, error)
	ListDeleted(ctx context.Context) ([]dto.DeletedItemResponse, error)
}

// ShipmentReader lecturas de envíos que alimentan los reportes.
type ShipmentReader interface {
	Get(ctx context.Context, id int64) (*dto.ShipmentResponse, error)
	GetAll(ctx context.Context) ([]dto.ShipmentResponse, error)
}

// InventorySpreadsheetGenerator genera el inventario como hoja de cálculo (XLSX).
type InventorySpreadsheetGenerator interface {
	GenerateInventoryXLSX(ctx context.Context, items []dto.ItemResponse, deleted []dto.DeletedItemResponse) ([]byte, error)
}

// ShipmentPDFGenerator genera la remisión (nota de entrega) de un envío.
type ShipmentPDFGenerator interface {
	GenerateShipmentPDF(ctx context.Context, shipment dto.ShipmentResponse) ([]byte, error)
}

// ShipmentManifestBuilder genera el manifiesto XML de despacho y su digest SHA-256
// sobre la forma canónica (C14N).
type ShipmentManifestBuilder interface {
	BuildManifest(ctx context.Context, shipments []dto.ShipmentResponse) (doc []byte, digest string, err error)
}
