package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementa repository.ShipmentRepository.
type ShipmentRepo struct {
	store *Store
	inTx  bool
}

func (r *ShipmentRepo) Create(_ context.Context, shipment *entity.Shipment) (int64, error) {
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("shipments.create"); err != nil {
			return err
		}
		r.store.seq.shipment++
		shipment.ID = r.store.seq.shipment
		st.shipments[shipment.ID] = *shipment
		return nil
	})
	if err != nil {
		return 0, err
	}
	return shipment.ID, nil
}

func (r *ShipmentRepo) GetForUpdate(_ context.Context, id int64) (*entity.Shipment, error) {
	var out *entity.Shipment
	err := r.store.do(r.inTx, func(st *state) error {
		if s, ok := st.shipments[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) Link(_ context.Context, shipmentID, assignmentID int64) error {
	return r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("shipments.link"); err != nil {
			return err
		}
		if _, ok := st.shipments[shipmentID]; !ok {
			return fmt.Errorf("link shipment: envío %d inexistente", shipmentID)
		}
		if _, ok := st.assignments[assignmentID]; !ok {
			return fmt.Errorf("link shipment: asignación %d inexistente", assignmentID)
		}
		if _, ok := st.links[assignmentID]; ok {
			return fmt.Errorf("link shipment: asignación %d ya enlazada", assignmentID)
		}
		st.links[assignmentID] = shipmentID
		return nil
	})
}

func (r *ShipmentRepo) LinkedAssignmentIDs(_ context.Context, shipmentID int64) ([]int64, error) {
	var ids []int64
	err := r.store.do(r.inTx, func(st *state) error {
		ids = linkedIDs(st, shipmentID)
		return nil
	})
	return ids, err
}

func linkedIDs(st *state, shipmentID int64) []int64 {
	var ids []int64
	for aID, sID := range st.links {
		if sID == shipmentID {
			ids = append(ids, aID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *ShipmentRepo) DeleteLinks(_ context.Context, shipmentID int64) (int64, error) {
	var n int64
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("shipments.delete_links"); err != nil {
			return err
		}
		for _, aID := range linkedIDs(st, shipmentID) {
			delete(st.links, aID)
			n++
		}
		return nil
	})
	return n, err
}

// Delete falla si quedan enlaces o asignaciones que apuntan al envío.
func (r *ShipmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("shipments.delete"); err != nil {
			return err
		}
		if _, ok := st.shipments[id]; !ok {
			return nil
		}
		if len(linkedIDs(st, id)) > 0 {
			return fmt.Errorf("delete shipment: envío %d con enlaces", id)
		}
		for _, a := range st.assignments {
			if a.ShipmentID != nil && *a.ShipmentID == id {
				return fmt.Errorf("delete shipment: asignación %d referencia el envío", a.ID)
			}
		}
		delete(st.shipments, id)
		found = true
		return nil
	})
	return found, err
}

func (r *ShipmentRepo) GetAggregate(_ context.Context, id int64) (*entity.ShipmentAggregate, error) {
	var out *entity.ShipmentAggregate
	err := r.store.do(r.inTx, func(st *state) error {
		if s, ok := st.shipments[id]; ok {
			out = aggregateOf(st, s)
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) ListAggregates(_ context.Context) ([]*entity.ShipmentAggregate, error) {
	var out []*entity.ShipmentAggregate
	err := r.store.do(r.inTx, func(st *state) error {
		for _, s := range st.shipments {
			out = append(out, aggregateOf(st, s))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func aggregateOf(st *state, s entity.Shipment) *entity.ShipmentAggregate {
	agg := &entity.ShipmentAggregate{Shipment: s, Items: []entity.ShipmentItem{}}
	for _, aID := range linkedIDs(st, s.ID) {
		a := st.assignments[aID]
		agg.Items = append(agg.Items, entity.ShipmentItem{
			AssignmentID:  a.ID,
			ItemID:        a.ItemID,
			Name:          st.items[a.ItemID].Name,
			AssignedCount: a.AssignedCount,
		})
	}
	return agg
}
