package entity

// Shipment cabecera inmutable de un envío.
type Shipment struct {
	ID          int64
	Name        string
	Destination string
}

// ShipmentLine línea solicitada al crear un envío (cantidad positiva).
type ShipmentLine struct {
	ItemID int64
	Count  int64
}

// ShipmentItem entrada del ledger que pertenece a un envío, con el nombre del item.
// AssignedCount conserva el signo del ledger (negativo para salidas).
type ShipmentItem struct {
	AssignmentID  int64
	ItemID        int64
	Name          string
	AssignedCount int64
}

// ShipmentAggregate cabecera + entradas del ledger enlazadas por shipments_to_assignments.
// Items va ordenado por id de asignación ascendente (orden de inserción).
type ShipmentAggregate struct {
	Shipment
	Items []ShipmentItem
}
