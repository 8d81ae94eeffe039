package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxFunc recibe repositorios atados a una misma transacción.
type TxFunc func(
	itemRepo repository.ItemRepository,
	assignmentRepo repository.ItemAssignmentRepository,
	deletionRepo repository.DeletionRepository,
	shipmentRepo repository.ShipmentRepository,
) error

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura (Rollback); si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
}
