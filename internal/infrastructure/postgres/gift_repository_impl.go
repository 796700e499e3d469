package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
	"github.com/giftlink/giftlink-api/internal/domain/repository"
)

type GiftRepository struct {
	pool *pgxpool.Pool
}

func NewGiftRepository(pool *pgxpool.Pool) *GiftRepository {
	return &GiftRepository{pool: pool}
}

func (r *GiftRepository) Create(ctx context.Context, g *entity.Gift) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO gifts (name, category, condition, age_years, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, g.Name, g.Category, g.Condition, g.AgeYears, g.Description, g.ImageURL)

	return row.Scan(&g.ID, &g.CreatedAt)
}

func (r *GiftRepository) GetByID(ctx context.Context, id string) (*entity.Gift, error) {
	g := &entity.Gift{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, category, condition, age_years, description, image_url, created_at
		FROM gifts
		WHERE id = $1
	`, id)

	if err := row.Scan(&g.ID, &g.Name, &g.Category, &g.Condition, &g.AgeYears,
		&g.Description, &g.ImageURL, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return g, nil
}

// Search builds a conditional WHERE clause from the filter, mirroring the
// query contract of GET /api/search: name is a case-insensitive
// contains match, category and condition match exactly, MaxAge bounds
// age_years from above.
func (r *GiftRepository) Search(ctx context.Context, f repository.GiftFilter) ([]entity.Gift, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Name != "" {
		conds = append(conds, "name ILIKE "+arg("%"+f.Name+"%"))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Condition != "" {
		conds = append(conds, "condition = "+arg(f.Condition))
	}
	if f.MaxAge != nil {
		conds = append(conds, "age_years <= "+arg(*f.MaxAge))
	}

	q := `
		SELECT id, name, category, condition, age_years, description, image_url, created_at
		FROM gifts`
	if len(conds) > 0 {
		q += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	q += "\n\t\tORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gifts := make([]entity.Gift, 0)
	for rows.Next() {
		var g entity.Gift
		if err := rows.Scan(&g.ID, &g.Name, &g.Category, &g.Condition, &g.AgeYears,
			&g.Description, &g.ImageURL, &g.CreatedAt); err != nil {
			return nil, err
		}
		gifts = append(gifts, g)
	}
	return gifts, rows.Err()
}

func (r *GiftRepository) UpdateImageURL(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE gifts SET image_url = $1 WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GiftRepository = (*GiftRepository)(nil)
