// Package manifest genera el manifiesto XML de despacho de los envíos.
//
//	<manifest shipments="2" units="67">
//	  <shipment id="1" name="Test" destination="Heidelberg" units="50">
//	    <item id="1" name="Chairs" count="50"/>
//	  </shipment>
//	</manifest>
//
// El digest es SHA-256 (hex) de la forma canónica C14N del documento, sin la declaración XML.
package manifest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/report"
)

var _ report.ShipmentManifestBuilder = (*Builder)(nil)

// Builder implementa report.ShipmentManifestBuilder con etree + c14n.
type Builder struct{}

// NewBuilder crea el builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildManifest devuelve el documento (con declaración XML) y el digest de su forma canónica.
func (b *Builder) BuildManifest(_ context.Context, shipments []dto.ShipmentResponse) ([]byte, string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("manifest")

	var units int64
	for _, s := range shipments {
		el := root.CreateElement("shipment")
		el.CreateAttr("id", strconv.FormatInt(s.ID, 10))
		el.CreateAttr("name", s.Name)
		el.CreateAttr("destination", s.Destination)

		var shipped int64
		for _, it := range s.Items {
			item := el.CreateElement("item")
			item.CreateAttr("id", strconv.FormatInt(it.ID, 10))
			item.CreateAttr("name", it.Name)
			item.CreateAttr("count", strconv.FormatInt(it.AssignedCount, 10))
			shipped += it.AssignedCount
		}
		el.CreateAttr("units", strconv.FormatInt(shipped, 10))
		units += shipped
	}
	root.CreateAttr("shipments", strconv.Itoa(len(shipments)))
	root.CreateAttr("units", strconv.FormatInt(units, 10))
	doc.Indent(2)

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("manifest: serializar: %w", err)
	}

	canonical, err := Canonicalize(body)
	if err != nil {
		return nil, "", fmt.Errorf("manifest: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)

	out := make([]byte, 0, len(xml.Header)+len(body))
	out = append(out, xml.Header...)
	out = append(out, body...)
	return out, hex.EncodeToString(sum[:]), nil
}

// Canonicalize forma canónica C14N de un documento XML.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
