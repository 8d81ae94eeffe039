package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemAssignmentRepository puerto del ledger de asignaciones (append-only).
// No valida suficiencia de stock: acepta cualquier cantidad con signo.
type ItemAssignmentRepository interface {
	// Create inserta una fila y devuelve su id.
	Create(ctx context.Context, assignment *entity.ItemAssignment) (int64, error)
	// Delete elimina una fila; devuelve true si existía.
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteByIDs elimina exactamente las filas indicadas y devuelve cuántas borró.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	SumByItem(ctx context.Context, itemID int64) (int64, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.ItemAssignment, error)
}
