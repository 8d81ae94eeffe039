package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemService operaciones de items que expone la API (lo implementa *inventory.ItemUseCase).
type ItemService interface {
	Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error)
	List(ctx context.Context) ([]dto.ItemResponse, error)
	ListDeleted(ctx context.Context) ([]dto.DeletedItemResponse, error)
	Search(ctx context.Context, fragment string) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error)
	History(ctx context.Context, id int64) ([]dto.AssignmentResponse, error)
	GetDeletionState(ctx context.Context, id int64) (entity.DeletionState, error)
	MarkDeleted(ctx context.Context, id int64, comment string) error
	Restore(ctx context.Context, id int64) error
}

// MovementService movimientos directos del ledger (lo implementa *inventory.RegisterMovementUseCase).
type MovementService interface {
	RegisterMovement(ctx context.Context, itemID int64, in dto.RegisterMovementRequest) (*dto.AssignmentResponse, error)
}

// InventoryHandler maneja las peticiones HTTP de items y movimientos.
type InventoryHandler struct {
	items     ItemService
	movements MovementService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items ItemService, movements MovementService) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements}
}

// List godoc
// @Summary      Listar inventario activo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.items.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDeleted godoc
// @Summary      Listar inventario eliminado
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.DeletedItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/deleted [get]
func (h *InventoryHandler) ListDeleted(c *fiber.Ctx) error {
	out, err := h.items.ListDeleted(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar items activos por nombre
// @Description  Coincidencia por fragmento, sin distinguir mayúsculas.
// @Tags         inventory
// @Produce      json
// @Param        name  query  string  true  "Fragmento del nombre"
// @Success      200   {array}   dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/search [get]
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	out, err := h.items.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener item activo
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.items.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de asignaciones del item
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {array}   dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.items.History(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletionState godoc
// @Summary      Estado de eliminación del item
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.DeletionStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/deletion [get]
func (h *InventoryHandler) DeletionState(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	state, err := h.items.GetDeletionState(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.DeletionStateResponse{Deleted: state.Deleted}
	if state.Deleted {
		deletionID := state.DeletionID
		out.DeletionID = &deletionID
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, count inicial"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar o restaurar item
// @Description  Con name y/o count renombra y fija el stock (asignación correctiva).
// @Description  Sin las claves name ni count (cuerpo vacío o {}) restaura un item eliminado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true   "ID del item"
// @Param        body  body  dto.UpdateItemRequest  false  "name, count"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	// La decisión depende de las claves presentes, no de sus valores: {"name":null} es una actualización.
	keys, err := bodyKeys(c)
	if err != nil {
		return invalidBody(c)
	}
	if !keys["name"] && !keys["count"] {
		return h.restore(c, id)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.IsEmpty() {
		return writeError(c, fmt.Errorf("%w: name o count no pueden ser null", domain.ErrInvalidInput))
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar item (lógico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del item"
// @Param        body  body  dto.DeleteItemRequest  true  "comentario de la eliminación"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.DeleteItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	if err := h.items.MarkDeleted(c.UserContext(), id, in.Comment); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "item eliminado"})
}

// Restore godoc
// @Summary      Restaurar item eliminado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/restore [post]
func (h *InventoryHandler) Restore(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	return h.restore(c, id)
}

func (h *InventoryHandler) restore(c *fiber.Ctx, id int64) error {
	if err := h.items.Restore(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "item restaurado"})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  count positivo para entradas, negativo para salidas o ajustes.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del item"
// @Param        body  body  dto.RegisterMovementRequest  true  "count, external_assignment_id"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.movements.RegisterMovement(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// bodyKeys devuelve las claves de primer nivel del cuerpo JSON. Un cuerpo vacío no tiene claves.
func bodyKeys(c *fiber.Ctx) (map[string]bool, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil, nil
	}
	var raw map[string]json.RawMessage
	if err := c.App().Config().JSONDecoder(body, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}
