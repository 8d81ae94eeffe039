package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestToShipmentResponse_InvierteSigno(t *testing.T) {
	agg := &entity.ShipmentAggregate{
		Shipment: entity.Shipment{ID: 2, Name: "Test2", Destination: "Heidelberg2"},
		Items: []entity.ShipmentItem{
			{AssignmentID: 10, ItemID: 1, Name: "Chairs", AssignedCount: -5},
			{AssignmentID: 11, ItemID: 2, Name: "Beds", AssignedCount: -10},
		},
	}
	out := ToShipmentResponse(agg)

	assert.Equal(t, int64(2), out.ID)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(5), out.Items[0].AssignedCount)
	assert.Equal(t, int64(10), out.Items[1].AssignedCount)
	assert.Equal(t, int64(2), out.Items[1].ShipmentID)
	assert.Equal(t, int64(2), out.Items[1].ID)
}

func TestToShipmentResponse_SinItems(t *testing.T) {
	out := ToShipmentResponse(&entity.ShipmentAggregate{Shipment: entity.Shipment{ID: 1}})
	assert.NotNil(t, out.Items, "se serializa como [] y no como null")
	assert.Empty(t, out.Items)
}
