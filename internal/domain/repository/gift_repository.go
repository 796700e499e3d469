package repository

import (
	"context"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
)

// GiftFilter narrows a gift search. Zero-valued members are ignored.
type GiftFilter struct {
	Name      string // case-insensitive substring match
	Category  string // exact match
	Condition string // exact match
	MaxAge    *int   // age_years upper bound, inclusive
}

// GiftRepository defines the interface for gift catalogue operations.
type GiftRepository interface {
	Create(ctx context.Context, g *entity.Gift) error
	GetByID(ctx context.Context, id string) (*entity.Gift, error)
	Search(ctx context.Context, f GiftFilter) ([]entity.Gift, error)
	// UpdateImageURL sets the stored image location for one gift.
	// Returns ErrNotFound when the store reports no matching row.
	UpdateImageURL(ctx context.Context, id, url string) error
}
