package postgres

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

const stepColumns = `s.id, s.goal_id, s.description, s.is_completed, s.step_order, s.created_at`

type goalStepsRepo struct {
	db dbtx
}

func scanStep(row interface{ Scan(...any) error }) (domain.GoalStep, error) {
	var s domain.GoalStep
	if err := row.Scan(&s.ID, &s.GoalID, &s.Description, &s.IsCompleted, &s.StepOrder, &s.CreatedAt); err != nil {
		return domain.GoalStep{}, err
	}
	return s, nil
}

func (r *goalStepsRepo) ListSteps(ctx context.Context, owner domain.UserID, goalID int64) ([]domain.GoalStep, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+stepColumns+`
		FROM goal_steps s
		JOIN goals g ON g.id = s.goal_id
		WHERE s.goal_id = $1 AND g.user_id = $2
		ORDER BY s.step_order, s.id`,
		goalID, int64(owner),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []domain.GoalStep{}
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func (r *goalStepsRepo) CreateStep(
	ctx context.Context,
	owner domain.UserID,
	goalID int64,
	description string,
	order *int,
) (domain.GoalStep, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO goal_steps AS s (goal_id, description, step_order)
		SELECT g.id, $1,
		       COALESCE($2::integer, (SELECT COALESCE(MAX(x.step_order) + 1, 0) FROM goal_steps x WHERE x.goal_id = g.id))
		FROM goals g
		WHERE g.id = $3 AND g.user_id = $4
		RETURNING `+stepColumns,
		description, nullInt(order), goalID, int64(owner),
	)
	s, err := scanStep(row)
	if err != nil {
		return domain.GoalStep{}, mapError(err)
	}
	return s, nil
}

func (r *goalStepsRepo) UpdateStep(ctx context.Context, owner domain.UserID, p domain.GoalStepPatch) (domain.GoalStep, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE goal_steps AS s
		SET description  = COALESCE($1::text, s.description),
		    is_completed = COALESCE($2::boolean, s.is_completed),
		    step_order   = COALESCE($3::integer, s.step_order)
		WHERE s.id = $4
		  AND s.goal_id IN (SELECT id FROM goals WHERE user_id = $5)
		RETURNING `+stepColumns,
		nullString(p.Description), nullBool(p.IsCompleted), nullInt(p.StepOrder), p.ID, int64(owner),
	)
	s, err := scanStep(row)
	if err != nil {
		return domain.GoalStep{}, mapError(err)
	}
	return s, nil
}

func (r *goalStepsRepo) DeleteStep(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.db.ExecContext(ctx, `
		DELETE FROM goal_steps
		WHERE id = $1
		  AND goal_id IN (SELECT id FROM goals WHERE user_id = $2)`,
		id, int64(owner),
	))
}
