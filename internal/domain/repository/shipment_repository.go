package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ShipmentRepository puerto de persistencia para envíos y su tabla de enlace.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) (int64, error)
	// GetForUpdate obtiene la cabecera bloqueando la fila; nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error)
	Link(ctx context.Context, shipmentID, assignmentID int64) error
	LinkedAssignmentIDs(ctx context.Context, shipmentID int64) ([]int64, error)
	DeleteLinks(ctx context.Context, shipmentID int64) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetAggregate(ctx context.Context, id int64) (*entity.ShipmentAggregate, error)
	ListAggregates(ctx context.Context) ([]*entity.ShipmentAggregate, error)
}
