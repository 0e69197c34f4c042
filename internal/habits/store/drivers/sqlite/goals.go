package sqlite

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type goalsRepo struct {
	q *gen.Queries
}

func (r *goalsRepo) ListGoals(ctx context.Context, owner domain.UserID) ([]domain.GoalSummary, error) {
	rows, err := r.q.ListGoals(ctx, int64(owner))
	if err != nil {
		return nil, err
	}

	goals := make([]domain.GoalSummary, len(rows))
	for i, row := range rows {
		goals[i] = domain.GoalSummary{
			Goal: mapGoal(gen.Goal{
				ID:          row.ID,
				UserID:      row.UserID,
				Name:        row.Name,
				Description: row.Description,
				Deadline:    row.Deadline,
				CreatedAt:   row.CreatedAt,
			}),
			StepsTotal:     int(row.StepsTotal),
			StepsCompleted: int(row.StepsCompleted),
		}
	}
	return goals, nil
}

func (r *goalsRepo) GetGoal(ctx context.Context, owner domain.UserID, id int64) (domain.GoalSummary, error) {
	row, err := r.q.GetGoal(ctx, gen.GetGoalParams{ID: id, UserID: int64(owner)})
	if err != nil {
		return domain.GoalSummary{}, mapNotFound(err)
	}

	return domain.GoalSummary{
		Goal: mapGoal(gen.Goal{
			ID:          row.ID,
			UserID:      row.UserID,
			Name:        row.Name,
			Description: row.Description,
			Deadline:    row.Deadline,
			CreatedAt:   row.CreatedAt,
		}),
		StepsTotal:     int(row.StepsTotal),
		StepsCompleted: int(row.StepsCompleted),
	}, nil
}

func (r *goalsRepo) CreateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error) {
	row, err := r.q.CreateGoal(ctx, gen.CreateGoalParams{
		UserID:      int64(owner),
		Name:        g.Name,
		Description: g.Description,
		Deadline:    mapOptionalString(g.Deadline),
	})
	if err != nil {
		return domain.Goal{}, mapError(err)
	}
	return mapGoal(row), nil
}

func (r *goalsRepo) UpdateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error) {
	row, err := r.q.UpdateGoal(ctx, gen.UpdateGoalParams{
		Name:        g.Name,
		Description: g.Description,
		Deadline:    mapOptionalString(g.Deadline),
		ID:          g.ID,
		UserID:      int64(owner),
	})
	if err != nil {
		return domain.Goal{}, mapError(err)
	}
	return mapGoal(row), nil
}

func (r *goalsRepo) DeleteGoal(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.q.DeleteGoal(ctx, gen.DeleteGoalParams{ID: id, UserID: int64(owner)}))
}
