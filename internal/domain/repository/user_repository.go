package repository

import (
	"context"
	"errors"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update persists the mutable profile fields and UpdatedAt.
	// Returns ErrNotFound when the store reports no matching row.
	Update(ctx context.Context, u *entity.User) error
}
