package shipment

import (
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ToShipmentResponse proyecta el agregado hacia la API. El ledger guarda las salidas
// con signo negativo; la API reporta la cantidad despachada en positivo (assigned_count = -delta).
func ToShipmentResponse(agg *entity.ShipmentAggregate) dto.ShipmentResponse {
	items := make([]dto.ShipmentItemResponse, 0, len(agg.Items))
	for _, it := range agg.Items {
		items = append(items, dto.ShipmentItemResponse{
			ShipmentID:    agg.ID,
			ID:            it.ItemID,
			Name:          it.Name,
			AssignedCount: -it.AssignedCount,
		})
	}
	return dto.ShipmentResponse{
		ID:          agg.ID,
		Name:        agg.Name,
		Destination: agg.Destination,
		Items:       items,
	}
}
