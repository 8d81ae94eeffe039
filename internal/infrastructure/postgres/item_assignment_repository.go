package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ItemAssignmentRepository = (*ItemAssignmentRepo)(nil)

// ItemAssignmentRepo ledger de asignaciones sobre PostgreSQL (usable con pool o tx).
// Solo inserta y borra filas; nunca actualiza assigned_count.
type ItemAssignmentRepo struct {
	q Querier
}

// NewItemAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemAssignmentRepository(q Querier) *ItemAssignmentRepo {
	return &ItemAssignmentRepo{q: q}
}

// Create inserta una fila del ledger y completa ID, CreatedAt y UpdatedAt.
func (r *ItemAssignmentRepo) Create(ctx context.Context, a *entity.ItemAssignment) (int64, error) {
	query := `
		INSERT INTO item_assignments (item_id, assigned_count, shipment_id, external_assignment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		a.ItemID, a.AssignedCount, a.ShipmentID, a.ExternalAssignmentID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert item assignment: %w", err)
	}
	return a.ID, nil
}

// Delete elimina una fila; false si no existía.
func (r *ItemAssignmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM item_assignments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete item assignment: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteByIDs elimina exactamente las filas indicadas.
func (r *ItemAssignmentRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM item_assignments WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete item assignments: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// SumByItem devuelve el stock actual del item (0 si no tiene movimientos).
func (r *ItemAssignmentRepo) SumByItem(ctx context.Context, itemID int64) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(assigned_count), 0)::BIGINT FROM item_assignments WHERE item_id = $1`, itemID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum item assignments: %w", err)
	}
	return total, nil
}

// ListByItem lista los movimientos del item en orden de inserción.
func (r *ItemAssignmentRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.ItemAssignment, error) {
	query := `
		SELECT id, item_id, assigned_count, shipment_id, external_assignment_id, created_at, updated_at
		FROM item_assignments WHERE item_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item assignments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ItemAssignment, 0)
	for rows.Next() {
		var a entity.ItemAssignment
		if err := rows.Scan(&a.ID, &a.ItemID, &a.AssignedCount, &a.ShipmentID,
			&a.ExternalAssignmentID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
