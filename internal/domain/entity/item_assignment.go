package entity

import "time"

// ItemAssignment es una entrada del ledger de asignaciones: un movimiento con signo
// sobre un item. Positivo = entrada/reposición, negativo = salida por envío.
// El signo se fija al crear la fila y nunca se modifica.
type ItemAssignment struct {
	ID                   int64
	ItemID               int64
	AssignedCount        int64
	ShipmentID           *int64
	ExternalAssignmentID *int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsOutbound indica si el movimiento descuenta stock.
func (a *ItemAssignment) IsOutbound() bool {
	return a.AssignedCount < 0
}
