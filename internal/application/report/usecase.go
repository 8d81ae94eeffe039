package report

import (
	"context"
)

// UseCase proyecciones de solo lectura del inventario y los envíos.
// No tiene estado propio ni decide orden: respeta el de las lecturas.
type UseCase struct {
	inventory InventoryReader
	shipments ShipmentReader
	xlsx      InventorySpreadsheetGenerator
	pdf       ShipmentPDFGenerator
	manifest  ShipmentManifestBuilder
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	inventory InventoryReader,
	shipments ShipmentReader,
	xlsx InventorySpreadsheetGenerator,
	pdf ShipmentPDFGenerator,
	manifest ShipmentManifestBuilder,
) *UseCase {
	return &UseCase{
		inventory: inventory,
		shipments: shipments,
		xlsx:      xlsx,
		pdf:       pdf,
		manifest:  manifest,
	}
}

// ShipmentsCSV todos los envíos en el orden de GetAll.
func (uc *UseCase) ShipmentsCSV(ctx context.Context) ([]byte, error) {
	list, err := uc.shipments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ExportShipmentsCSV(list)
}

// InventoryCSV inventario activo.
func (uc *UseCase) InventoryCSV(ctx context.Context) ([]byte, error) {
	items, err := uc.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	return ExportInventoryCSV(items)
}

// DeletedInventoryCSV inventario eliminado con comentarios.
func (uc *UseCase) DeletedInventoryCSV(ctx context.Context) ([]byte, error) {
	items, err := uc.inventory.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return ExportDeletedInventoryCSV(items)
}

// InventoryXLSX libro con una hoja de inventario activo y otra de eliminados.
func (uc *UseCase) InventoryXLSX(ctx context.Context) ([]byte, error) {
	items, err := uc.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := uc.inventory.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.GenerateInventoryXLSX(ctx, items, deleted)
}

// ShipmentsXML manifiesto de despacho de todos los envíos y su digest.
func (uc *UseCase) ShipmentsXML(ctx context.Context) ([]byte, string, error) {
	list, err := uc.shipments.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}
	return uc.manifest.BuildManifest(ctx, list)
}

// ShipmentPDF remisión de un envío; ErrNotFound si no existe.
func (uc *UseCase) ShipmentPDF(ctx context.Context, id int64) ([]byte, error) {
	s, err := uc.shipments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateShipmentPDF(ctx, *s)
}
