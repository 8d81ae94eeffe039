package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// DeletionRepository puerto del registro de eliminaciones (comentarios de auditoría).
type DeletionRepository interface {
	Create(ctx context.Context, comment string) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Deletion, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
