package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ItemAssignmentRepository = (*ItemAssignmentRepo)(nil)

// ItemAssignmentRepo implementa repository.ItemAssignmentRepository.
type ItemAssignmentRepo struct {
	store *Store
	inTx  bool
}

// Create completa ID y timestamps en a, como el RETURNING de PostgreSQL.
func (r *ItemAssignmentRepo) Create(_ context.Context, a *entity.ItemAssignment) (int64, error) {
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("assignments.create"); err != nil {
			return err
		}
		if _, ok := st.items[a.ItemID]; !ok {
			return fmt.Errorf("insert item_assignment: item %d inexistente", a.ItemID)
		}
		if a.ShipmentID != nil {
			if _, ok := st.shipments[*a.ShipmentID]; !ok {
				return fmt.Errorf("insert item_assignment: envío %d inexistente", *a.ShipmentID)
			}
		}
		r.store.seq.assignment++
		now := r.store.now()
		a.ID = r.store.seq.assignment
		a.CreatedAt, a.UpdatedAt = now, now
		row := *a
		row.ShipmentID = copyID(a.ShipmentID)
		row.ExternalAssignmentID = copyID(a.ExternalAssignmentID)
		st.assignments[a.ID] = row
		return nil
	})
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *ItemAssignmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := r.DeleteByIDs(ctx, []int64{id})
	return n == 1, err
}

// DeleteByIDs falla si alguna fila sigue enlazada a un envío (FK de shipments_to_assignments).
func (r *ItemAssignmentRepo) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	var n int64
	err := r.store.do(r.inTx, func(st *state) error {
		if len(ids) == 0 {
			return nil
		}
		if err := r.store.fault("assignments.delete"); err != nil {
			return err
		}
		for _, id := range ids {
			if _, linked := st.links[id]; linked {
				return fmt.Errorf("delete item_assignments: asignación %d enlazada", id)
			}
		}
		for _, id := range ids {
			if _, ok := st.assignments[id]; ok {
				delete(st.assignments, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ItemAssignmentRepo) SumByItem(_ context.Context, itemID int64) (int64, error) {
	var sum int64
	err := r.store.do(r.inTx, func(st *state) error {
		for _, a := range st.assignments {
			if a.ItemID == itemID {
				sum += a.AssignedCount
			}
		}
		return nil
	})
	return sum, err
}

func (r *ItemAssignmentRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.ItemAssignment, error) {
	var out []*entity.ItemAssignment
	err := r.store.do(r.inTx, func(st *state) error {
		for _, a := range st.assignments {
			if a.ItemID == itemID {
				a := a // per-iteration copy (go 1.21 loop semantics)
				a.ShipmentID = copyID(a.ShipmentID)
				a.ExternalAssignmentID = copyID(a.ExternalAssignmentID)
				out = append(out, &a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
