package dto

// ShipmentItemRequest línea de un envío: item y cantidad a despachar (positiva).
type ShipmentItemRequest struct {
	ItemID int64 `json:"id" validate:"required,gt=0"`
	Count  int64 `json:"count" validate:"required,gt=0"`
}

// CreateShipmentRequest entrada para crear un envío.
type CreateShipmentRequest struct {
	Name        string                `json:"name" validate:"required,alphanum,max=200"`
	Destination string                `json:"destination" validate:"required,alphanum,max=200"`
	Items       []ShipmentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ShipmentItemResponse línea de un envío. AssignedCount es la cantidad despachada
// en positivo, aunque el ledger la guarde con signo negativo.
type ShipmentItemResponse struct {
	ShipmentID    int64  `json:"shipment_id"`
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AssignedCount int64  `json:"assigned_count"`
}

// ShipmentResponse agregado de un envío.
type ShipmentResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Destination string                 `json:"destination"`
	Items       []ShipmentItemResponse `json:"items"`
}

// ShipmentCreatedResponse id del envío creado.
type ShipmentCreatedResponse struct {
	ID int64 `json:"id"`
}
