package sqlite

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type goalStepsRepo struct {
	q *gen.Queries
}

func (r *goalStepsRepo) ListSteps(ctx context.Context, owner domain.UserID, goalID int64) ([]domain.GoalStep, error) {
	rows, err := r.q.ListGoalSteps(ctx, gen.ListGoalStepsParams{GoalID: goalID, UserID: int64(owner)})
	if err != nil {
		return nil, err
	}

	steps := make([]domain.GoalStep, len(rows))
	for i, row := range rows {
		steps[i] = mapGoalStep(row)
	}
	return steps, nil
}

func (r *goalStepsRepo) CreateStep(
	ctx context.Context,
	owner domain.UserID,
	goalID int64,
	description string,
	order *int,
) (domain.GoalStep, error) {
	row, err := r.q.CreateGoalStep(ctx, gen.CreateGoalStepParams{
		Description: description,
		StepOrder:   mapOptionalInt(order),
		GoalID:      goalID,
		UserID:      int64(owner),
	})
	if err != nil {
		return domain.GoalStep{}, mapError(err)
	}
	return mapGoalStep(row), nil
}

func (r *goalStepsRepo) UpdateStep(ctx context.Context, owner domain.UserID, p domain.GoalStepPatch) (domain.GoalStep, error) {
	row, err := r.q.UpdateGoalStep(ctx, gen.UpdateGoalStepParams{
		Description: mapOptionalString(p.Description),
		IsCompleted: mapOptionalBool(p.IsCompleted),
		StepOrder:   mapOptionalInt(p.StepOrder),
		ID:          p.ID,
		UserID:      int64(owner),
	})
	if err != nil {
		return domain.GoalStep{}, mapError(err)
	}
	return mapGoalStep(row), nil
}

func (r *goalStepsRepo) DeleteStep(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.q.DeleteGoalStep(ctx, gen.DeleteGoalStepParams{ID: id, UserID: int64(owner)}))
}
