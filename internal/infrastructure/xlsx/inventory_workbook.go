// Package xlsx exporta el inventario a un libro de Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/report"
)

var _ report.InventorySpreadsheetGenerator = (*ExcelizeInventoryWorkbook)(nil)

// Nombres de las hojas del libro.
const (
	SheetActive  = "Inventario"
	SheetDeleted = "Eliminados"
)

// ExcelizeInventoryWorkbook implementa report.InventorySpreadsheetGenerator con excelize.
type ExcelizeInventoryWorkbook struct{}

// NewExcelizeInventoryWorkbook crea el generador.
func NewExcelizeInventoryWorkbook() *ExcelizeInventoryWorkbook {
	return &ExcelizeInventoryWorkbook{}
}

// GenerateInventoryXLSX arma el libro: una hoja con el inventario activo y otra con los eliminados.
// Las cabeceras coinciden con las de los CSV.
func (g *ExcelizeInventoryWorkbook) GenerateInventoryXLSX(_ context.Context, items []dto.ItemResponse, deleted []dto.DeletedItemResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetActive); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetDeleted); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	active := make([][]any, 0, len(items))
	for _, it := range items {
		active = append(active, []any{it.ID, it.Name, it.Count})
	}
	if err := writeSheet(f, SheetActive, report.InventoryCSVHeader, active, bold); err != nil {
		return nil, err
	}

	removed := make([][]any, 0, len(deleted))
	for _, it := range deleted {
		removed = append(removed, []any{it.ID, it.Name, it.Count, it.Comment})
	}
	if err := writeSheet(f, SheetDeleted, report.DeletedInventoryCSVHeader, removed, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera %s: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
