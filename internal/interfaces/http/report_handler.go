package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ReportService exportaciones del inventario y los envíos (lo implementa *report.UseCase).
type ReportService interface {
	ShipmentsCSV(ctx context.Context) ([]byte, error)
	InventoryCSV(ctx context.Context) ([]byte, error)
	DeletedInventoryCSV(ctx context.Context) ([]byte, error)
	InventoryXLSX(ctx context.Context) ([]byte, error)
	ShipmentsXML(ctx context.Context) ([]byte, string, error)
	ShipmentPDF(ctx context.Context, id int64) ([]byte, error)
}

// Content types de las exportaciones.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXML  = "application/xml; charset=utf-8"
	ContentTypePDF  = "application/pdf"

	// HeaderManifestDigest SHA-256 (hex) de la forma canónica del manifiesto.
	HeaderManifestDigest = "X-Manifest-Digest"
)

// ReportHandler descargas CSV/XLSX/XML/PDF.
type ReportHandler struct {
	uc ReportService
}

// NewReportHandler construye el handler.
func NewReportHandler(uc ReportService) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func attachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// InventoryCSV godoc
// @Summary      Exportar inventario activo (CSV)
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string  "id,name,count"
// @Router       /api/inventory/export.csv [get]
func (h *ReportHandler) InventoryCSV(c *fiber.Ctx) error {
	data, err := h.uc.InventoryCSV(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, ContentTypeCSV, "inventario.csv", data)
}

// DeletedInventoryCSV godoc
// @Summary      Exportar inventario eliminado (CSV)
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string  "id,name,count,comment"
// @Router       /api/inventory/deleted/export.csv [get]
func (h *ReportHandler) DeletedInventoryCSV(c *fiber.Ctx) error {
	data, err := h.uc.DeletedInventoryCSV(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, ContentTypeCSV, "inventario_eliminado.csv", data)
}

// InventoryXLSX godoc
// @Summary      Exportar inventario (XLSX)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/inventory/export.xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *fiber.Ctx) error {
	data, err := h.uc.InventoryXLSX(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, ContentTypeXLSX, "inventario.xlsx", data)
}

// ShipmentsCSV godoc
// @Summary      Exportar envíos (CSV)
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string  "shipment,destination,item_name,count"
// @Router       /api/shipments/export.csv [get]
func (h *ReportHandler) ShipmentsCSV(c *fiber.Ctx) error {
	data, err := h.uc.ShipmentsCSV(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, ContentTypeCSV, "envios.csv", data)
}

// ShipmentsXML godoc
// @Summary      Manifiesto de despacho (XML)
// @Description  El header X-Manifest-Digest lleva el SHA-256 de la forma canónica (C14N).
// @Tags         reports
// @Produce      application/xml
// @Success      200  {string}  string
// @Router       /api/shipments/export.xml [get]
func (h *ReportHandler) ShipmentsXML(c *fiber.Ctx) error {
	data, digest, err := h.uc.ShipmentsXML(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(HeaderManifestDigest, digest)
	return attachment(c, ContentTypeXML, "manifiesto.xml", data)
}

// ShipmentPDF godoc
// @Summary      Remisión del envío (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del envío"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/pdf [get]
func (h *ReportHandler) ShipmentPDF(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	data, err := h.uc.ShipmentPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, ContentTypePDF, fmt.Sprintf("remision_%d.pdf", id), data)
}
