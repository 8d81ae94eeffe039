package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.DeletionRepository = (*DeletionRepo)(nil)

// DeletionRepo implementación de DeletionRepository sobre PostgreSQL (usable con pool o tx).
type DeletionRepo struct {
	q Querier
}

// NewDeletionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeletionRepository(q Querier) *DeletionRepo {
	return &DeletionRepo{q: q}
}

// Create inserta un registro de eliminación con su comentario y devuelve el id.
func (r *DeletionRepo) Create(ctx context.Context, comment string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO deletions (comment, created_at, updated_at) VALUES ($1, now(), now()) RETURNING id`,
		comment,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert deletion: %w", err)
	}
	return id, nil
}

// GetByID obtiene un registro de eliminación; nil si no existe.
func (r *DeletionRepo) GetByID(ctx context.Context, id int64) (*entity.Deletion, error) {
	var d entity.Deletion
	err := r.q.QueryRow(ctx,
		`SELECT id, comment, created_at, updated_at FROM deletions WHERE id = $1`, id,
	).Scan(&d.ID, &d.Comment, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deletion: %w", err)
	}
	return &d, nil
}

// Delete elimina el registro; false si no existía.
func (r *DeletionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM deletions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete deletion: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
