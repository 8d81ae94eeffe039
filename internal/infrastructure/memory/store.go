// Package memory implementa los repositorios y el TxRunner en memoria.
// Replica las restricciones del esquema PostgreSQL (FKs, UNIQUE de items.deletion_id,
// enlace único por asignación) y revierte la transacción completa si el callback falla.
// Las secuencias de ids no se revierten, igual que en PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type sequences struct {
	item, assignment, deletion, shipment int64
}

type state struct {
	items       map[int64]entity.Item
	assignments map[int64]entity.ItemAssignment
	deletions   map[int64]entity.Deletion
	shipments   map[int64]entity.Shipment
	links       map[int64]int64 // assignment_id → shipment_id
}

func newState() *state {
	return &state{
		items:       map[int64]entity.Item{},
		assignments: map[int64]entity.ItemAssignment{},
		deletions:   map[int64]entity.Deletion{},
		shipments:   map[int64]entity.Shipment{},
		links:       map[int64]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		v.DeletionID = copyID(v.DeletionID)
		c.items[k] = v
	}
	for k, v := range s.assignments {
		v.ShipmentID = copyID(v.ShipmentID)
		v.ExternalAssignmentID = copyID(v.ExternalAssignmentID)
		c.assignments[k] = v
	}
	for k, v := range s.deletions {
		c.deletions[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	return c
}

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Store base de datos en memoria. Run serializa las transacciones con un mutex;
// las lecturas fuera de transacción toman el mismo mutex por operación.
type Store struct {
	mu  sync.Mutex
	st  *state
	seq sequences

	// Now reloj para created_at/updated_at.
	Now func() time.Time
	// Fault, si no es nil, se consulta antes de cada escritura ("items.create",
	// "assignments.create", "shipments.link", ...). Un error simula una falla de almacenamiento.
	Fault func(op string) error
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState(), Now: time.Now}
}

// Run ejecuta fn con repositorios ligados a la transacción. Si fn devuelve error el
// estado vuelve al snapshot tomado al inicio.
func (s *Store) Run(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	err := fn(
		&ItemRepo{store: s, inTx: true},
		&ItemAssignmentRepo{store: s, inTx: true},
		&DeletionRepo{store: s, inTx: true},
		&ShipmentRepo{store: s, inTx: true},
	)
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// ItemRepository repositorio de items fuera de transacción.
func (s *Store) ItemRepository() *ItemRepo { return &ItemRepo{store: s} }

// ItemAssignmentRepository repositorio del ledger fuera de transacción.
func (s *Store) ItemAssignmentRepository() *ItemAssignmentRepo {
	return &ItemAssignmentRepo{store: s}
}

// DeletionRepository repositorio de eliminaciones fuera de transacción.
func (s *Store) DeletionRepository() *DeletionRepo { return &DeletionRepo{store: s} }

// ShipmentRepository repositorio de envíos fuera de transacción.
func (s *Store) ShipmentRepository() *ShipmentRepo { return &ShipmentRepo{store: s} }

func (s *Store) do(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

func (s *Store) fault(op string) error {
	if s.Fault == nil {
		return nil
	}
	if err := s.Fault(op); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
