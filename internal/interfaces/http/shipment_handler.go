package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// ShipmentService operaciones de envíos (lo implementa *shipment.UseCase).
type ShipmentService interface {
	Create(ctx context.Context, in dto.CreateShipmentRequest) (int64, error)
	Get(ctx context.Context, id int64) (*dto.ShipmentResponse, error)
	GetAll(ctx context.Context) ([]dto.ShipmentResponse, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ShipmentHandler maneja las peticiones HTTP de envíos.
type ShipmentHandler struct {
	uc ShipmentService
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar envíos
// @Tags         shipments
// @Produce      json
// @Success      200  {array}   dto.ShipmentResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener envío con sus items
// @Tags         shipments
// @Produce      json
// @Param        id   path  int  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear envío
// @Description  Descuenta del stock cada línea (asignación negativa) en una sola transacción.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "name, destination, items[{id, count}]"
// @Success      201   {object}  dto.ShipmentCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ShipmentCreatedResponse{ID: id})
}

// Delete godoc
// @Summary      Eliminar envío
// @Description  Borra enlaces, asignaciones y cabecera; el stock despachado vuelve al inventario.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del envío"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	deleted, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "envío no encontrado"})
	}
	return c.JSON(dto.MessageResponse{Message: "envío eliminado"})
}
