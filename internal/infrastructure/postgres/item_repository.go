package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// El stock siempre se calcula sumando el ledger; el cast evita el NUMERIC que devuelve SUM(BIGINT).
const itemStockSelect = `
	SELECT i.id, i.name, COALESCE(SUM(a.assigned_count), 0)::BIGINT AS count,
	       i.deletion_id, COALESCE(d.comment, '') AS comment
	FROM items i
	LEFT JOIN item_assignments a ON a.item_id = i.id
	LEFT JOIN deletions d ON d.id = i.deletion_id`

const itemStockGroupBy = `
	GROUP BY i.id, i.name, i.deletion_id, d.comment`

// Create inserta un item activo y devuelve su id.
func (r *ItemRepo) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `INSERT INTO items (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// GetByID obtiene un item (activo o eliminado); nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.get(ctx, `SELECT id, name, deletion_id FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el item y bloquea su fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.get(ctx, `SELECT id, name, deletion_id FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) get(ctx context.Context, query string, id int64) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.DeletionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// GetStock obtiene el item con su stock actual y comentario de eliminación; nil si no existe.
func (r *ItemRepo) GetStock(ctx context.Context, id int64) (*entity.ItemStock, error) {
	query := itemStockSelect + ` WHERE i.id = $1` + itemStockGroupBy
	var s entity.ItemStock
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Count, &s.DeletionID, &s.Comment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item stock: %w", err)
	}
	return &s, nil
}

// ListActive lista los items no eliminados con su stock, por id ascendente.
func (r *ItemRepo) ListActive(ctx context.Context) ([]*entity.ItemStock, error) {
	query := itemStockSelect + ` WHERE i.deletion_id IS NULL` + itemStockGroupBy + ` ORDER BY i.id`
	return r.list(ctx, query)
}

// ListDeleted lista los items eliminados con su stock y comentario, por id ascendente.
func (r *ItemRepo) ListDeleted(ctx context.Context) ([]*entity.ItemStock, error) {
	query := itemStockSelect + ` WHERE i.deletion_id IS NOT NULL` + itemStockGroupBy + ` ORDER BY i.id`
	return r.list(ctx, query)
}

func (r *ItemRepo) list(ctx context.Context, query string) ([]*entity.ItemStock, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ItemStock, 0)
	for rows.Next() {
		var s entity.ItemStock
		if err := rows.Scan(&s.ID, &s.Name, &s.Count, &s.DeletionID, &s.Comment); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateName renombra el item; false si no existe.
func (r *ItemRepo) UpdateName(ctx context.Context, id int64, name string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return false, fmt.Errorf("update item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetDeletion fija o limpia el enlace a deletions. Si otro item ya usa el mismo registro
// (UNIQUE sobre deletion_id) devuelve domain.ErrConflict.
func (r *ItemRepo) SetDeletion(ctx context.Context, id int64, deletionID *int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET deletion_id = $2 WHERE id = $1`, id, deletionID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("set item deletion: %w", domain.ErrConflict)
		}
		return false, fmt.Errorf("set item deletion: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
