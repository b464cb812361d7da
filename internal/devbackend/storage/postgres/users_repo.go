package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-walks-client/internal/devbackend/accounts"
	"pet-walks-client/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, name, email, phone, role_id, password_hash, enabled, created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, phone, role_id, password_hash, enabled, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		u.Name,
		u.Email,
		u.Phone,
		int(u.RoleID),
		u.PasswordHash,
		u.Enabled,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return accounts.User{}, accounts.ErrEmailTaken
		}
		return accounts.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (accounts.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return accounts.User{}, accounts.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UsersRepo) UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1
	`, id, hash, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (accounts.User, error) {
	var (
		u    accounts.User
		role int
	)
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&role,
		&u.PasswordHash,
		&u.Enabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.User{}, accounts.ErrNotFound
		}
		return accounts.User{}, err
	}
	u.RoleID = auth.RoleID(role)
	return u, nil
}
