// Package pdf genera la remisión (nota de entrega) de un envío.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: REMISIÓN + N° envío   │  Destino                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Item | Cantidad despachada                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL unidades  │  QR con la referencia del envío          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/report"
)

var _ report.ShipmentPDFGenerator = (*MarotoShipmentPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoShipmentPDF implementa report.ShipmentPDFGenerator usando Maroto v2.
type MarotoShipmentPDF struct {
	company string
}

// NewMarotoShipmentPDF construye el generador; company aparece como autor del documento.
func NewMarotoShipmentPDF(company string) *MarotoShipmentPDF {
	return &MarotoShipmentPDF{company: company}
}

// GenerateShipmentPDF genera la remisión y devuelve sus bytes.
func (g *MarotoShipmentPDF) GenerateShipmentPDF(_ context.Context, s dto.ShipmentResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Remisión %s", ShipmentReference(s.ID)), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(s.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remisión: %w", err)
	}
	return doc.GetBytes(), nil
}

// ShipmentReference referencia legible del envío (también va en el QR).
func ShipmentReference(id int64) string {
	return fmt.Sprintf("ENV-%06d", id)
}

func headerRow(s dto.ShipmentResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN DE ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{Size: 10, Top: 9}),
		),
		col.New(5).Add(
			text.New(ShipmentReference(s.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Destino: "+s.Destination, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 8, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

func tableRows(items []dto.ShipmentItemResponse) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(8).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1})),
			col.New(3).Add(text.New(strconv.FormatInt(it.AssignedCount, 10), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func footerRow(s dto.ShipmentResponse) core.Row {
	var total int64
	for _, it := range s.Items {
		total += it.AssignedCount
	}
	return row.New(40).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Total unidades: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4,
			}),
			text.New("Firma de recibido: ____________________", props.Text{
				Size: 8, Top: 24, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(ShipmentReference(s.ID), props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}
