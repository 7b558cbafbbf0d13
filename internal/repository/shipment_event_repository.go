package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// ShipmentEventRepository stores shipment history entries.
type ShipmentEventRepository interface {
	Create(ctx context.Context, event *domain.ShipmentEvent) error
	ListByShipment(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error)
}

type shipmentEventRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentEventRepository builds repository.
func NewShipmentEventRepository(pool *pgxpool.Pool) ShipmentEventRepository {
	return &shipmentEventRepository{pool: pool}
}

func (r *shipmentEventRepository) Create(ctx context.Context, event *domain.ShipmentEvent) error {
	const query = `
        INSERT INTO shipment_events (shipment_id, status, location, note, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.ShipmentID,
		event.Status,
		event.Location,
		event.Note,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *shipmentEventRepository) ListByShipment(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	const query = `
        SELECT id, shipment_id, status, location, note, created_by, created_at
        FROM shipment_events WHERE shipment_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ShipmentEvent
	for rows.Next() {
		var event domain.ShipmentEvent
		if err := rows.Scan(
			&event.ID,
			&event.ShipmentID,
			&event.Status,
			&event.Location,
			&event.Note,
			&event.CreatedBy,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
