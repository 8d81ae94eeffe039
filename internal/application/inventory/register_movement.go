package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos directos de stock (reposición o ajuste)
// sobre un item activo, fuera de cualquier envío.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// RegisterMovement bloquea la fila del item (SELECT FOR UPDATE) para que no se elimine
// en paralelo y agrega la entrada con signo al ledger.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, itemID int64, in dto.RegisterMovementRequest) (*dto.AssignmentResponse, error) {
	if itemID <= 0 || in.Count == 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.AssignmentResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		assignmentRepo repository.ItemAssignmentRepository,
		_ repository.DeletionRepository,
		_ repository.ShipmentRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
		}
		if item.IsDeleted() {
			return fmt.Errorf("item %d eliminado: %w", itemID, domain.ErrConflict)
		}
		a, err := record(ctx, assignmentRepo, itemID, in.Count, nil, in.ExternalAssignmentID)
		if err != nil {
			return err
		}
		out = toAssignmentResponse(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
