package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos y tabla de enlace shipments_to_assignments sobre PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Une cabecera, enlaces, asignaciones y nombres de item. LEFT JOIN para no perder
// una cabecera aunque no tenga líneas.
const shipmentAggregateSelect = `
	SELECT s.id, s.name, s.destination, a.id, a.item_id, i.name, a.assigned_count
	FROM shipments s
	LEFT JOIN shipments_to_assignments sa ON sa.shipment_id = s.id
	LEFT JOIN item_assignments a ON a.id = sa.assignment_id
	LEFT JOIN items i ON i.id = a.item_id`

// Create inserta la cabecera del envío y devuelve su id.
func (r *ShipmentRepo) Create(ctx context.Context, shipment *entity.Shipment) (int64, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO shipments (name, destination) VALUES ($1, $2) RETURNING id`,
		shipment.Name, shipment.Destination,
	).Scan(&shipment.ID)
	if err != nil {
		return 0, fmt.Errorf("insert shipment: %w", err)
	}
	return shipment.ID, nil
}

// GetForUpdate obtiene la cabecera y bloquea la fila; nil si no existe.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(ctx,
		`SELECT id, name, destination FROM shipments WHERE id = $1 FOR UPDATE`, id,
	).Scan(&s.ID, &s.Name, &s.Destination)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Link inserta la fila de enlace envío → asignación.
func (r *ShipmentRepo) Link(ctx context.Context, shipmentID, assignmentID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO shipments_to_assignments (shipment_id, assignment_id) VALUES ($1, $2)`,
		shipmentID, assignmentID,
	)
	if err != nil {
		return fmt.Errorf("link shipment assignment: %w", err)
	}
	return nil
}

// LinkedAssignmentIDs devuelve los ids de asignación enlazados al envío.
func (r *ShipmentRepo) LinkedAssignmentIDs(ctx context.Context, shipmentID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx,
		`SELECT assignment_id FROM shipments_to_assignments WHERE shipment_id = $1 ORDER BY assignment_id`,
		shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shipment links: %w", err)
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shipment link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteLinks elimina todas las filas de enlace del envío.
func (r *ShipmentRepo) DeleteLinks(ctx context.Context, shipmentID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shipments_to_assignments WHERE shipment_id = $1`, shipmentID)
	if err != nil {
		return 0, fmt.Errorf("delete shipment links: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la cabecera; false si no existía.
func (r *ShipmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete shipment: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// GetAggregate arma el agregado de un envío; nil si no existe.
func (r *ShipmentRepo) GetAggregate(ctx context.Context, id int64) (*entity.ShipmentAggregate, error) {
	list, err := r.queryAggregates(ctx, shipmentAggregateSelect+` WHERE s.id = $1 ORDER BY s.id, a.id`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListAggregates arma todos los agregados: envíos por id y líneas por id de asignación.
func (r *ShipmentRepo) ListAggregates(ctx context.Context) ([]*entity.ShipmentAggregate, error) {
	return r.queryAggregates(ctx, shipmentAggregateSelect+` ORDER BY s.id, a.id`)
}

func (r *ShipmentRepo) queryAggregates(ctx context.Context, query string, args ...any) ([]*entity.ShipmentAggregate, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ShipmentAggregate, 0)
	var current *entity.ShipmentAggregate
	for rows.Next() {
		var (
			s            entity.Shipment
			assignmentID *int64
			itemID       *int64
			itemName     *string
			count        *int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Destination, &assignmentID, &itemID, &itemName, &count); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		// Las filas llegan ordenadas por s.id: un cambio de id abre un agregado nuevo.
		if current == nil || current.ID != s.ID {
			current = &entity.ShipmentAggregate{Shipment: s, Items: make([]entity.ShipmentItem, 0)}
			list = append(list, current)
		}
		if assignmentID == nil {
			continue
		}
		item := entity.ShipmentItem{AssignmentID: *assignmentID}
		if itemID != nil {
			item.ItemID = *itemID
		}
		if itemName != nil {
			item.Name = *itemName
		}
		if count != nil {
			item.AssignedCount = *count
		}
		current.Items = append(current.Items, item)
	}
	return list, rows.Err()
}
