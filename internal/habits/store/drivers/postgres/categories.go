package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

const categoryColumns = `id, name, color, user_id, created_at`

type categoriesRepo struct {
	db dbtx
}

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var (
		c     domain.Category
		owner sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &owner, &c.CreatedAt); err != nil {
		return domain.Category{}, err
	}
	c.UserID = ownerPtr(owner)
	return c, nil
}

func (r *categoriesRepo) ListVisibleCategories(ctx context.Context, owner domain.UserID) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY id`,
		int64(owner),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoriesRepo) GetVisibleCategory(ctx context.Context, owner domain.UserID, id int64) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)`,
		id, int64(owner),
	)
	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapError(err)
	}
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, owner domain.UserID, c domain.Category) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, color, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Color, int64(owner),
	)
	created, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapError(err)
	}
	return created, nil
}
