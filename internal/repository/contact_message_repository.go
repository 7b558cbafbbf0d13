package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// ContactMessageRepository manages messages left through the contact form.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

type contactMessageRepository struct {
	pool *pgxpool.Pool
}

// NewContactMessageRepository builds repository.
func NewContactMessageRepository(pool *pgxpool.Pool) ContactMessageRepository {
	return &contactMessageRepository{pool: pool}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (name, email, phone, subject, body)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *contactMessageRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error) {
	query := `
        SELECT id, name, email, phone, subject, body, read_at, created_at
        FROM contact_messages`
	if unreadOnly {
		query += " WHERE read_at IS NULL"
	}
	query += " ORDER BY created_at DESC"
	query += limitOffset(limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactMessage
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Subject,
			&msg.Body,
			&msg.ReadAt,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *contactMessageRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE contact_messages SET read_at=COALESCE(read_at, NOW()) WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM contact_messages WHERE read_at IS NULL`
	var count int64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}
