package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// RecordAssignment agrega una entrada al ledger usando el repositorio de la transacción del caller.
// No valida suficiencia de stock: la política es del caller. Devuelve el id de la entrada.
func RecordAssignment(
	ctx context.Context,
	assignmentRepo repository.ItemAssignmentRepository,
	itemID, signedCount int64,
	shipmentID, externalAssignmentID *int64,
) (int64, error) {
	a, err := record(ctx, assignmentRepo, itemID, signedCount, shipmentID, externalAssignmentID)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func record(
	ctx context.Context,
	assignmentRepo repository.ItemAssignmentRepository,
	itemID, signedCount int64,
	shipmentID, externalAssignmentID *int64,
) (*entity.ItemAssignment, error) {
	log.Debug().
		Int64("item_id", itemID).
		Int64("assigned_count", signedCount).
		Msg("insertando asignación")

	a := &entity.ItemAssignment{
		ItemID:               itemID,
		AssignedCount:        signedCount,
		ShipmentID:           shipmentID,
		ExternalAssignmentID: externalAssignmentID,
	}
	if _, err := assignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveAssignment elimina una entrada del ledger; devuelve si existía.
// Solo se usa como parte del borrado de un envío.
func RemoveAssignment(ctx context.Context, assignmentRepo repository.ItemAssignmentRepository, id int64) (bool, error) {
	log.Debug().Int64("assignment_id", id).Msg("eliminando asignación")
	return assignmentRepo.Delete(ctx, id)
}

// RemoveAssignments elimina exactamente las entradas indicadas y devuelve cuántas existían.
// Una sola entrada va por RemoveAssignment; varias, en un único DELETE.
func RemoveAssignments(ctx context.Context, assignmentRepo repository.ItemAssignmentRepository, ids []int64) (int64, error) {
	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
		ok, err := RemoveAssignment(ctx, assignmentRepo, ids[0])
		if err != nil || !ok {
			return 0, err
		}
		return 1, nil
	}
	log.Debug().Int("assignments", len(ids)).Msg("eliminando asignaciones")
	return assignmentRepo.DeleteByIDs(ctx, ids)
}
