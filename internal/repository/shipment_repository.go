package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

const uniqueViolation = "23505"

// ErrDuplicateTrackingCode is returned when an insert collides with an existing tracking code.
var ErrDuplicateTrackingCode = errors.New("tracking code already exists")

// ShipmentFilter captures admin search parameters.
type ShipmentFilter struct {
	Statuses   []domain.ShipmentStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// ShipmentRepository encapsulates shipment persistence.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	GetByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
	UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) error
	List(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error)
	CountByStatus(ctx context.Context) (map[domain.ShipmentStatus]int64, error)
}

type shipmentRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository instantiates repository.
func NewShipmentRepository(pool *pgxpool.Pool) ShipmentRepository {
	return &shipmentRepository{pool: pool}
}

const shipmentColumns = `id, tracking_code, sender_name, sender_phone, recipient_name, recipient_phone,
               origin, destination, weight_lbs, service_level, status, created_by, created_at, updated_at`

func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	const query = `
        INSERT INTO shipments (tracking_code, sender_name, sender_phone, recipient_name, recipient_phone,
            origin, destination, weight_lbs, service_level, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		shipment.TrackingCode,
		shipment.SenderName,
		shipment.SenderPhone,
		shipment.RecipientName,
		shipment.RecipientPhone,
		shipment.Origin,
		shipment.Destination,
		shipment.WeightLbs,
		shipment.ServiceLevel,
		shipment.Status,
		shipment.CreatedBy,
	).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt)
	if isTrackingCodeConflict(err) {
		return ErrDuplicateTrackingCode
	}
	return err
}

func isTrackingCodeConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && strings.Contains(pgErr.ConstraintName, "tracking_code")
}

func (r *shipmentRepository) GetByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_code=$1`
	return scanShipment(r.pool.QueryRow(ctx, query, code))
}

func scanShipment(row pgx.Row) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := row.Scan(
		&shipment.ID,
		&shipment.TrackingCode,
		&shipment.SenderName,
		&shipment.SenderPhone,
		&shipment.RecipientName,
		&shipment.RecipientPhone,
		&shipment.Origin,
		&shipment.Destination,
		&shipment.WeightLbs,
		&shipment.ServiceLevel,
		&shipment.Status,
		&shipment.CreatedBy,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) error {
	const query = `UPDATE shipments SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shipmentRepository) List(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	clauses := []string{}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		args = append(args, statuses)
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.SearchTerm)+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf("(tracking_code ILIKE $%d OR recipient_name ILIKE $%d OR sender_name ILIKE $%d)", idx, idx, idx))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += limitOffset(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shipment)
	}
	return result, rows.Err()
}

func (r *shipmentRepository) CountByStatus(ctx context.Context) (map[domain.ShipmentStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM shipments GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ShipmentStatus]int64)
	for rows.Next() {
		var (
			status domain.ShipmentStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
