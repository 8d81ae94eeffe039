package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ItemUseCase ciclo de vida de los items: alta, consulta, corrección de stock,
// eliminación lógica con comentario y restauración.
type ItemUseCase struct {
	txRunner       TxRunner
	itemRepo       repository.ItemRepository
	assignmentRepo repository.ItemAssignmentRepository
}

// NewItemUseCase construye el caso de uso. Los repositorios sirven para lecturas fuera de transacción.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	assignmentRepo repository.ItemAssignmentRepository,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:       txRunner,
		itemRepo:       itemRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Create crea el item y, si Count > 0, su asignación inicial en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Count < 0 {
		return nil, domain.ErrInvalidInput
	}

	var id int64
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		assignmentRepo repository.ItemAssignmentRepository,
		_ repository.DeletionRepository,
		_ repository.ShipmentRepository,
	) error {
		var err error
		id, err = itemRepo.Create(ctx, name)
		if err != nil {
			return err
		}
		if in.Count == 0 {
			return nil
		}
		_, err = RecordAssignment(ctx, assignmentRepo, id, in.Count, nil, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ID: id, Name: name, Count: in.Count}, nil
}

// GetByID obtiene un item activo con su stock. Los eliminados se tratan como no encontrados.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	s, err := uc.itemRepo.GetStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.DeletionID != nil {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return toItemResponse(s), nil
}

// List lista el inventario activo.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toItemResponse(s))
	}
	return items, nil
}

// ListDeleted lista los items eliminados con su comentario.
func (uc *ItemUseCase) ListDeleted(ctx context.Context) ([]dto.DeletedItemResponse, error) {
	list, err := uc.itemRepo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeletedItemResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toDeletedItemResponse(s))
	}
	return items, nil
}

// Search devuelve los items activos cuyo nombre contiene fragment, sin distinguir
// mayúsculas ni formas Unicode compuestas/descompuestas.
func (uc *ItemUseCase) Search(ctx context.Context, fragment string) ([]dto.ItemResponse, error) {
	needle := foldName(fragment)
	if needle == "" {
		return nil, domain.ErrInvalidInput
	}
	all, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0)
	for _, it := range all {
		if strings.Contains(foldName(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Update renombra y/o fija el stock de un item activo. Fijar el stock agrega una
// asignación por la diferencia (count - actual); las entradas anteriores no se tocan.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Count != nil && *in.Count < 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ItemResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		assignmentRepo repository.ItemAssignmentRepository,
		_ repository.DeletionRepository,
		_ repository.ShipmentRepository,
	) error {
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
		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
			if _, err := itemRepo.UpdateName(ctx, id, item.Name); err != nil {
				return err
			}
		}
		current, err := assignmentRepo.SumByItem(ctx, id)
		if err != nil {
			return err
		}
		if in.Count != nil && *in.Count != current {
			if _, err := RecordAssignment(ctx, assignmentRepo, id, *in.Count-current, nil, nil); err != nil {
				return err
			}
			current = *in.Count
		}
		out = &dto.ItemResponse{ID: id, Name: item.Name, Count: current}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCurrentCount suma el ledger del item; 0 si aún no tiene movimientos.
func (uc *ItemUseCase) GetCurrentCount(ctx context.Context, id int64) (int64, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return uc.assignmentRepo.SumByItem(ctx, id)
}

// History lista las asignaciones del item en orden de inserción.
func (uc *ItemUseCase) History(ctx context.Context, id int64) ([]dto.AssignmentResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	list, err := uc.assignmentRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAssignmentResponse(a))
	}
	return out, nil
}

// GetDeletionState indica si el item está activo o eliminado (y con qué registro).
// Es una lectura sin bloqueo: el estado puede cambiar antes de actuar sobre él.
func (uc *ItemUseCase) GetDeletionState(ctx context.Context, id int64) (entity.DeletionState, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return entity.DeletionState{}, err
	}
	if item == nil {
		return entity.DeletionState{}, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return deletionStateOf(item), nil
}

func deletionStateOf(item *entity.Item) entity.DeletionState {
	if !item.IsDeleted() {
		return entity.DeletionState{}
	}
	return entity.DeletionState{Deleted: true, DeletionID: *item.DeletionID}
}

// MarkDeleted elimina lógicamente el item: crea el registro con el comentario y enlaza el item.
// ErrNotFound si el item no existe, ErrConflict si ya estaba eliminado.
func (uc *ItemUseCase) MarkDeleted(ctx context.Context, id int64, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.ItemAssignmentRepository,
		deletionRepo repository.DeletionRepository,
		_ repository.ShipmentRepository,
	) error {
		// El bloqueo de fila serializa eliminaciones/restauraciones concurrentes del mismo item;
		// el UNIQUE de items.deletion_id cubre el resto (SetDeletion → ErrConflict).
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		if deletionStateOf(item).Deleted {
			return fmt.Errorf("item %d ya eliminado: %w", id, domain.ErrConflict)
		}
		deletionID, err := deletionRepo.Create(ctx, comment)
		if err != nil {
			return err
		}
		ok, err := itemRepo.SetDeletion(ctx, id, &deletionID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		log.Debug().Int64("item_id", id).Int64("deletion_id", deletionID).Msg("item marcado como eliminado")
		return nil
	})
}

// Restore revierte la eliminación lógica: limpia el enlace y borra el registro de eliminación.
// ErrConflict si el item no está eliminado; ErrNotFound si el item o su registro no existen.
func (uc *ItemUseCase) Restore(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.ItemAssignmentRepository,
		deletionRepo repository.DeletionRepository,
		_ repository.ShipmentRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		state := deletionStateOf(item)
		if !state.Deleted {
			return fmt.Errorf("item %d no está eliminado: %w", id, domain.ErrConflict)
		}
		deletion, err := deletionRepo.GetByID(ctx, state.DeletionID)
		if err != nil {
			return err
		}
		if deletion == nil {
			log.Error().Int64("item_id", id).Int64("deletion_id", state.DeletionID).
				Msg("registro de eliminación inexistente: inconsistencia de datos")
			return fmt.Errorf("registro de eliminación %d: %w", state.DeletionID, domain.ErrNotFound)
		}
		// Primero se suelta el enlace (FK items.deletion_id) y luego se borra el registro.
		if _, err := itemRepo.SetDeletion(ctx, id, nil); err != nil {
			return err
		}
		ok, err := deletionRepo.Delete(ctx, deletion.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("registro de eliminación %d: %w", deletion.ID, domain.ErrNotFound)
		}
		log.Debug().Int64("item_id", id).Str("comment", deletion.Comment).Msg("item restaurado")
		return nil
	})
}

func toItemResponse(s *entity.ItemStock) *dto.ItemResponse {
	return &dto.ItemResponse{ID: s.ID, Name: s.Name, Count: s.Count}
}

func toDeletedItemResponse(s *entity.ItemStock) dto.DeletedItemResponse {
	out := dto.DeletedItemResponse{ID: s.ID, Name: s.Name, Count: s.Count, Comment: s.Comment}
	if s.DeletionID != nil {
		out.DeletionID = *s.DeletionID
	}
	return out
}

func toAssignmentResponse(a *entity.ItemAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:                   a.ID,
		ItemID:               a.ItemID,
		AssignedCount:        a.AssignedCount,
		ShipmentID:           a.ShipmentID,
		ExternalAssignmentID: a.ExternalAssignmentID,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
