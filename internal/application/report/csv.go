package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// Cabeceras fijas de los reportes CSV.
var (
	ShipmentsCSVHeader        = []string{"shipment", "destination", "item_name", "count"}
	InventoryCSVHeader        = []string{"id", "name", "count"}
	DeletedInventoryCSVHeader = []string{"id", "name", "count", "comment"}
)

// ExportShipmentsCSV una fila por (envío, item) respetando el orden de entrada.
// count es la cantidad despachada en positivo.
func ExportShipmentsCSV(shipments []dto.ShipmentResponse) ([]byte, error) {
	rows := make([][]string, 0)
	for _, s := range shipments {
		for _, it := range s.Items {
			rows = append(rows, []string{s.Name, s.Destination, it.Name, strconv.FormatInt(it.AssignedCount, 10)})
		}
	}
	return writeCSV(ShipmentsCSVHeader, rows)
}

// ExportInventoryCSV inventario activo: id, name, count.
func ExportInventoryCSV(items []dto.ItemResponse) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{strconv.FormatInt(it.ID, 10), it.Name, strconv.FormatInt(it.Count, 10)})
	}
	return writeCSV(InventoryCSVHeader, rows)
}

// ExportDeletedInventoryCSV inventario eliminado: id, name, count, comment.
func ExportDeletedInventoryCSV(items []dto.DeletedItemResponse) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10), it.Name, strconv.FormatInt(it.Count, 10), it.Comment,
		})
	}
	return writeCSV(DeletedInventoryCSVHeader, rows)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv: escribir filas: %w", err)
	}
	return buf.Bytes(), nil
}
