package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.DeletionRepository = (*DeletionRepo)(nil)

// DeletionRepo implementa repository.DeletionRepository.
type DeletionRepo struct {
	store *Store
	inTx  bool
}

func (r *DeletionRepo) Create(_ context.Context, comment string) (int64, error) {
	var id int64
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("deletions.create"); err != nil {
			return err
		}
		r.store.seq.deletion++
		id = r.store.seq.deletion
		now := r.store.now()
		st.deletions[id] = entity.Deletion{ID: id, Comment: comment, CreatedAt: now, UpdatedAt: now}
		return nil
	})
	return id, err
}

func (r *DeletionRepo) GetByID(_ context.Context, id int64) (*entity.Deletion, error) {
	var out *entity.Deletion
	err := r.store.do(r.inTx, func(st *state) error {
		if d, ok := st.deletions[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

// Delete falla si algún item sigue apuntando al registro (FK items.deletion_id).
func (r *DeletionRepo) Delete(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.store.do(r.inTx, func(st *state) error {
		if err := r.store.fault("deletions.delete"); err != nil {
			return err
		}
		if _, ok := st.deletions[id]; !ok {
			return nil
		}
		for _, it := range st.items {
			if it.DeletionID != nil && *it.DeletionID == id {
				return fmt.Errorf("delete deletion: referenciado por item %d", it.ID)
			}
		}
		delete(st.deletions, id)
		found = true
		return nil
	})
	return found, err
}
