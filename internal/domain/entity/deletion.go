package entity

import "time"

// Deletion registro de eliminación lógica con su comentario de auditoría.
// Vive exactamente mientras el item referenciado esté eliminado.
type Deletion struct {
	ID        int64
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
