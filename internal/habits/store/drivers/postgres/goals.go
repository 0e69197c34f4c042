package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

const goalColumns = `g.id, g.user_id, g.name, g.description, to_char(g.deadline, 'YYYY-MM-DD'), g.created_at`

const goalSummarySelect = `
	SELECT ` + goalColumns + `,
	       COUNT(s.id),
	       COALESCE(SUM(CASE WHEN s.is_completed THEN 1 ELSE 0 END), 0)
	FROM goals g
	LEFT JOIN goal_steps s ON s.goal_id = g.id`

type goalsRepo struct {
	db dbtx
}

func scanGoal(row interface{ Scan(...any) error }, extra ...any) (domain.Goal, error) {
	var (
		g        domain.Goal
		owner    int64
		deadline sql.NullString
	)
	dest := []any{&g.ID, &owner, &g.Name, &g.Description, &deadline, &g.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Goal{}, err
	}
	g.UserID = domain.UserID(owner)
	g.Deadline = stringPtr(deadline)
	return g, nil
}

func scanGoalSummary(row interface{ Scan(...any) error }) (domain.GoalSummary, error) {
	var s domain.GoalSummary
	g, err := scanGoal(row, &s.StepsTotal, &s.StepsCompleted)
	if err != nil {
		return domain.GoalSummary{}, err
	}
	s.Goal = g
	return s, nil
}

func (r *goalsRepo) ListGoals(ctx context.Context, owner domain.UserID) ([]domain.GoalSummary, error) {
	rows, err := r.db.QueryContext(ctx, goalSummarySelect+`
		WHERE g.user_id = $1
		GROUP BY g.id
		ORDER BY g.deadline ASC NULLS LAST, g.id`,
		int64(owner),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []domain.GoalSummary{}
	for rows.Next() {
		g, err := scanGoalSummary(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalsRepo) GetGoal(ctx context.Context, owner domain.UserID, id int64) (domain.GoalSummary, error) {
	row := r.db.QueryRowContext(ctx, goalSummarySelect+`
		WHERE g.id = $1 AND g.user_id = $2
		GROUP BY g.id`,
		id, int64(owner),
	)
	g, err := scanGoalSummary(row)
	if err != nil {
		return domain.GoalSummary{}, mapError(err)
	}
	return g, nil
}

func (r *goalsRepo) CreateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO goals AS g (user_id, name, description, deadline)
		VALUES ($1, $2, $3, $4::date)
		RETURNING `+goalColumns,
		int64(owner), g.Name, g.Description, nullString(g.Deadline),
	)
	created, err := scanGoal(row)
	if err != nil {
		return domain.Goal{}, mapError(err)
	}
	return created, nil
}

func (r *goalsRepo) UpdateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE goals AS g
		SET name = $1, description = $2, deadline = $3::date
		WHERE g.id = $4 AND g.user_id = $5
		RETURNING `+goalColumns,
		g.Name, g.Description, nullString(g.Deadline), g.ID, int64(owner),
	)
	updated, err := scanGoal(row)
	if err != nil {
		return domain.Goal{}, mapError(err)
	}
	return updated, nil
}

func (r *goalsRepo) DeleteGoal(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, int64(owner)))
}
