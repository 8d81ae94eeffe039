package shipment

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// UseCase agregado de envíos: cabecera inmutable + entradas del ledger enlazadas.
// Ciclo de vida: inexistente → creado → eliminado (terminal). No hay actualización.
type UseCase struct {
	txRunner     inventory.TxRunner
	shipmentRepo repository.ShipmentRepository
}

// NewUseCase construye el caso de uso. shipmentRepo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner inventory.TxRunner, shipmentRepo repository.ShipmentRepository) *UseCase {
	return &UseCase{txRunner: txRunner, shipmentRepo: shipmentRepo}
}

// Create crea el envío en una sola transacción: cabecera, una asignación negativa por
// línea y una fila de enlace por asignación. Si algo falla no queda nada escrito.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (int64, error) {
	header := entity.Shipment{
		Name:        strings.TrimSpace(in.Name),
		Destination: strings.TrimSpace(in.Destination),
	}
	lines, err := toLines(in.Items)
	if err != nil {
		return 0, err
	}
	if header.Name == "" || header.Destination == "" {
		return 0, domain.ErrInvalidInput
	}

	var shipmentID int64
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		assignmentRepo repository.ItemAssignmentRepository,
		_ repository.DeletionRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		if err := lockItems(ctx, itemRepo, lines); err != nil {
			return err
		}
		var err error
		shipmentID, err = shipmentRepo.Create(ctx, &header)
		if err != nil {
			return err
		}
		// Las asignaciones se registran en el orden de la solicitud.
		for _, line := range lines {
			assignmentID, err := inventory.RecordAssignment(ctx, assignmentRepo, line.ItemID, -line.Count, &shipmentID, nil)
			if err != nil {
				return err
			}
			if err := shipmentRepo.Link(ctx, shipmentID, assignmentID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug().Int64("shipment_id", shipmentID).Int("lines", len(lines)).Msg("envío creado")
	return shipmentID, nil
}

// lockItems bloquea cada item del envío una sola vez y en orden ascendente de id, de modo
// que todos los envíos concurrentes toman los bloqueos en el mismo orden.
// ErrNotFound si un item no existe, ErrConflict si está eliminado.
func lockItems(ctx context.Context, itemRepo repository.ItemRepository, lines []entity.ShipmentLine) error {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			ids = append(ids, line.ItemID)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		if item.IsDeleted() {
			return fmt.Errorf("item %d eliminado: %w", id, domain.ErrConflict)
		}
	}
	return nil
}

func toLines(items []dto.ShipmentItemRequest) ([]entity.ShipmentLine, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]entity.ShipmentLine, 0, len(items))
	for _, it := range items {
		if it.ItemID <= 0 || it.Count <= 0 {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.ShipmentLine{ItemID: it.ItemID, Count: it.Count})
	}
	return lines, nil
}

// Get devuelve el agregado del envío; ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.ShipmentResponse, error) {
	agg, err := uc.shipmentRepo.GetAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, fmt.Errorf("envío %d: %w", id, domain.ErrNotFound)
	}
	out := ToShipmentResponse(agg)
	return &out, nil
}

// GetAll devuelve todos los envíos por id, con sus líneas en orden de inserción.
func (uc *UseCase) GetAll(ctx context.Context) ([]dto.ShipmentResponse, error) {
	list, err := uc.shipmentRepo.ListAggregates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, agg := range list {
		out = append(out, ToShipmentResponse(agg))
	}
	return out, nil
}

// Delete elimina el envío en una sola transacción y en orden explícito:
// (1) ids de asignación enlazados, (2) enlaces, (3) exactamente esas asignaciones,
// (4) cabecera. Devuelve false si el envío no existía.
func (uc *UseCase) Delete(ctx context.Context, id int64) (bool, error) {
	existed := false
	err := uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		assignmentRepo repository.ItemAssignmentRepository,
		_ repository.DeletionRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		header, err := shipmentRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if header == nil {
			return nil
		}
		existed = true
		return deleteAggregate(ctx, shipmentRepo, assignmentRepo, id)
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

// deleteAggregate borra las tres capas del envío. El borrado de asignaciones se acota
// a los ids enlazados, nunca al item: las de otros envíos o ajustes directos no se tocan.
func deleteAggregate(
	ctx context.Context,
	shipmentRepo repository.ShipmentRepository,
	assignmentRepo repository.ItemAssignmentRepository,
	id int64,
) error {
	ids, err := shipmentRepo.LinkedAssignmentIDs(ctx, id)
	if err != nil {
		return err
	}
	if _, err := shipmentRepo.DeleteLinks(ctx, id); err != nil {
		return err
	}
	removed, err := inventory.RemoveAssignments(ctx, assignmentRepo, ids)
	if err != nil {
		return err
	}
	if removed != int64(len(ids)) {
		log.Warn().Int64("shipment_id", id).Int("linked", len(ids)).Int64("removed", removed).
			Msg("asignaciones enlazadas faltantes al eliminar envío")
	}
	ok, err := shipmentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("envío %d: %w", id, domain.ErrConflict)
	}
	log.Debug().Int64("shipment_id", id).Int("assignments", len(ids)).Msg("envío eliminado")
	return nil
}
