package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia para items.
type ItemRepository interface {
	Create(ctx context.Context, name string) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetForUpdate bloquea la fila del item hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	GetStock(ctx context.Context, id int64) (*entity.ItemStock, error)
	ListActive(ctx context.Context) ([]*entity.ItemStock, error)
	ListDeleted(ctx context.Context) ([]*entity.ItemStock, error)
	UpdateName(ctx context.Context, id int64, name string) (bool, error)
	// SetDeletion fija o limpia (nil) el enlace item → deletions.
	SetDeletion(ctx context.Context, id int64, deletionID *int64) (bool, error)
}
