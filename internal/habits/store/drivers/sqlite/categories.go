package sqlite

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type categoriesRepo struct {
	q *gen.Queries
}

func (r *categoriesRepo) ListVisibleCategories(ctx context.Context, owner domain.UserID) ([]domain.Category, error) {
	rows, err := r.q.ListVisibleCategories(ctx, ownerParam(owner))
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = mapCategory(row)
	}
	return categories, nil
}

func (r *categoriesRepo) GetVisibleCategory(ctx context.Context, owner domain.UserID, id int64) (domain.Category, error) {
	row, err := r.q.GetVisibleCategory(ctx, gen.GetVisibleCategoryParams{
		ID:     id,
		UserID: ownerParam(owner),
	})
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return mapCategory(row), nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, owner domain.UserID, c domain.Category) (domain.Category, error) {
	row, err := r.q.CreateCategory(ctx, gen.CreateCategoryParams{
		Name:   c.Name,
		Color:  c.Color,
		UserID: ownerParam(owner),
	})
	if err != nil {
		return domain.Category{}, mapError(err)
	}
	return mapCategory(row), nil
}
