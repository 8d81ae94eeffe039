package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct {
	store *Store
	inTx  bool
}

func (r *ItemRepo) Create(_ context.Context, name string) (int64, error) {
	var id int64
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("items.create"); err != nil {
			return err
		}
		r.store.seq.item++
		id = r.store.seq.item
		st.items[id] = entity.Item{ID: id, Name: name}
		return nil
	})
	return id, err
}

func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	err := r.store.do(r.inTx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			it.DeletionID = copyID(it.DeletionID)
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el Store en exclusiva.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetStock(_ context.Context, id int64) (*entity.ItemStock, error) {
	var out *entity.ItemStock
	err := r.store.do(r.inTx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			s := stockOf(st, it)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) ListActive(_ context.Context) ([]*entity.ItemStock, error) {
	return r.list(func(it entity.Item) bool { return !it.IsDeleted() })
}

func (r *ItemRepo) ListDeleted(_ context.Context) ([]*entity.ItemStock, error) {
	return r.list(func(it entity.Item) bool { return it.IsDeleted() })
}

func (r *ItemRepo) list(keep func(entity.Item) bool) ([]*entity.ItemStock, error) {
	var out []*entity.ItemStock
	err := r.store.do(r.inTx, func(st *state) error {
		for _, it := range st.items {
			if keep(it) {
				s := stockOf(st, it)
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func stockOf(st *state, it entity.Item) entity.ItemStock {
	s := entity.ItemStock{ID: it.ID, Name: it.Name, DeletionID: copyID(it.DeletionID)}
	for _, a := range st.assignments {
		if a.ItemID == it.ID {
			s.Count += a.AssignedCount
		}
	}
	if it.DeletionID != nil {
		s.Comment = st.deletions[*it.DeletionID].Comment
	}
	return s
}

func (r *ItemRepo) UpdateName(_ context.Context, id int64, name string) (bool, error) {
	found := false
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("items.update_name"); err != nil {
			return err
		}
		it, ok := st.items[id]
		if !ok {
			return nil
		}
		it.Name = name
		st.items[id] = it
		found = true
		return nil
	})
	return found, err
}

func (r *ItemRepo) SetDeletion(_ context.Context, id int64, deletionID *int64) (bool, error) {
	found := false
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("items.set_deletion"); err != nil {
			return err
		}
		it, ok := st.items[id]
		if !ok {
			return nil
		}
		if deletionID != nil {
			if _, ok := st.deletions[*deletionID]; !ok {
				return fmt.Errorf("set item deletion: deletion %d inexistente", *deletionID)
			}
			for otherID, other := range st.items {
				if otherID != id && other.DeletionID != nil && *other.DeletionID == *deletionID {
					return fmt.Errorf("set item deletion: %w", domain.ErrConflict)
				}
			}
		}
		it.DeletionID = copyID(deletionID)
		st.items[id] = it
		found = true
		return nil
	})
	return found, err
}
