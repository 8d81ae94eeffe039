package entity

// Item representa un artículo del inventario. El stock no vive aquí: se deriva
// de la suma de sus asignaciones (item_assignments).
type Item struct {
	ID         int64
	Name       string
	DeletionID *int64 // nil = activo; no nil = eliminado (soft delete)
}

// IsDeleted indica si el item está marcado como eliminado.
func (i *Item) IsDeleted() bool {
	return i.DeletionID != nil
}

// ItemStock vista de lectura: item + stock actual calculado desde el ledger.
// Comment solo se llena para items eliminados.
type ItemStock struct {
	ID         int64
	Name       string
	Count      int64
	DeletionID *int64
	Comment    string
}

// DeletionState estado de eliminación de un item (activo o eliminado con su registro).
type DeletionState struct {
	Deleted    bool
	DeletionID int64
}
