package dto

import "time"

// CreateItemRequest entrada para crear un item con su stock inicial.
type CreateItemRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Count int64  `json:"count" validate:"min=0"`
}

// UpdateItemRequest renombra y/o fija el stock de un item. Al menos un campo es obligatorio.
// Fijar Count agrega una asignación correctiva; el historial no se reescribe.
type UpdateItemRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Count *int64  `json:"count" validate:"omitempty,min=0"`
}

// IsEmpty indica que name y count llegaron ausentes o null.
func (r UpdateItemRequest) IsEmpty() bool {
	return r.Name == nil && r.Count == nil
}

// DeleteItemRequest comentario de auditoría para la eliminación lógica.
type DeleteItemRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

// RegisterMovementRequest movimiento directo de stock (reposición o ajuste).
type RegisterMovementRequest struct {
	Count                int64  `json:"count" validate:"required"`
	ExternalAssignmentID *int64 `json:"external_assignment_id"`
}

// ItemResponse item activo con su stock actual.
type ItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DeletedItemResponse item eliminado con su comentario.
type DeletedItemResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	DeletionID int64  `json:"deletion_id"`
	Comment    string `json:"comment"`
}

// AssignmentResponse fila del ledger de asignaciones.
type AssignmentResponse struct {
	ID                   int64     `json:"id"`
	ItemID               int64     `json:"item_id"`
	AssignedCount        int64     `json:"assigned_count"`
	ShipmentID           *int64    `json:"shipment_id"`
	ExternalAssignmentID *int64    `json:"external_assignment_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DeletionStateResponse estado de eliminación de un item.
type DeletionStateResponse struct {
	Deleted    bool   `json:"deleted"`
	DeletionID *int64 `json:"deletion_id,omitempty"`
}
