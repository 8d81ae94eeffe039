package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxBeginner abre transacciones (*pgxpool.Pool lo implementa).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La conexión vuelve al pool en todos los caminos de salida (Commit o Rollback diferido).
func (r *TxRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Tras un Commit exitoso el Rollback es un no-op (pgx.ErrTxClosed).
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	assignmentRepo := NewItemAssignmentRepository(tx)
	deletionRepo := NewDeletionRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)

	if err := fn(itemRepo, assignmentRepo, deletionRepo, shipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
