package accounts

import (
	"context"
	"errors"
	"time"

	"pet-walks-client/internal/ports/auth"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User es la cuenta guardada por el backend de desarrollo.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	RoleID       auth.RoleID
	PasswordHash string
	Enabled      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public es la vista que viaja al cliente (sin hash).
func (u User) Public() auth.User {
	return auth.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		RoleID:   u.RoleID,
		RoleName: u.RoleID.String(),
		Enabled:  u.Enabled,
	}
}

type Repository interface {
	// Create asigna el ID. Email duplicado => ErrEmailTaken.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error
}
