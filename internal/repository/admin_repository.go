package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// AdminRepository handles persistence for admin privilege records.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Admin, error)
	List(ctx context.Context, filter AdminFilter) ([]domain.AdminAccount, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastLogin(ctx context.Context, id string) error
}

// AdminFilter defines query params for admin listing.
type AdminFilter struct {
	Role   *domain.AdminRole
	Active *bool
	Limit  int
	Offset int
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, user_id, password_hash, role, is_active, permissions, last_login_at, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (user_id, password_hash, role, is_active, permissions)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.UserID,
		admin.PasswordHash,
		admin.Role,
		admin.Active,
		admin.Permissions.List(),
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id=$1`
	return scanAdmin(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetByUserID(ctx context.Context, userID string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE user_id=$1`
	return scanAdmin(r.pool.QueryRow(ctx, query, userID))
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var (
		admin       domain.Admin
		hash        *string
		permissions []string
	)
	if err := row.Scan(
		&admin.ID,
		&admin.UserID,
		&hash,
		&admin.Role,
		&admin.Active,
		&permissions,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if hash != nil {
		admin.PasswordHash = *hash
	}
	admin.Permissions = domain.NewPermissions(permissions...)
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context, filter AdminFilter) ([]domain.AdminAccount, error) {
	query := `
        SELECT a.id, a.user_id, a.role, a.is_active, a.permissions, a.last_login_at, a.created_at, a.updated_at,
               u.name, u.email, u.created_at, u.updated_at
        FROM admins a JOIN users u ON u.id = a.user_id`
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("a.role=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("a.is_active=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY a.created_at DESC"
	query += limitOffset(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdminAccount
	for rows.Next() {
		var (
			account     domain.AdminAccount
			permissions []string
		)
		if err := rows.Scan(
			&account.Admin.ID,
			&account.Admin.UserID,
			&account.Admin.Role,
			&account.Admin.Active,
			&permissions,
			&account.Admin.LastLoginAt,
			&account.Admin.CreatedAt,
			&account.Admin.UpdatedAt,
			&account.User.Name,
			&account.User.Email,
			&account.User.CreatedAt,
			&account.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		account.User.ID = account.Admin.UserID
		account.Admin.Permissions = domain.NewPermissions(permissions...)
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *adminRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE admins SET is_active=$1, updated_at=NOW() WHERE id=$2`
	return r.execOne(ctx, query, active, id)
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE admins SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	return r.execOne(ctx, query, passwordHash, id)
}

func (r *adminRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE admins SET last_login_at=NOW() WHERE id=$1`
	return r.execOne(ctx, query, id)
}

func (r *adminRepository) execOne(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func limitOffset(limit, offset int) string {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}
