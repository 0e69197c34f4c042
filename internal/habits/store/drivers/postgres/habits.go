package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

// JSONB and TIME come back as text so they reach the domain unchanged.
const habitColumns = `h.id, h.user_id, h.category_id, h.name, h.description, h.frequency::text,
	h.reminder_time::text, h.is_archived, h.created_at`

type habitsRepo struct {
	db dbtx
}

func scanHabit(row interface{ Scan(...any) error }, extra ...any) (domain.Habit, error) {
	var (
		h          domain.Habit
		owner      int64
		categoryID sql.NullInt64
		frequency  string
		reminder   sql.NullString
	)
	dest := []any{&h.ID, &owner, &categoryID, &h.Name, &h.Description, &frequency, &reminder, &h.IsArchived, &h.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Habit{}, err
	}
	h.UserID = domain.UserID(owner)
	h.CategoryID = int64Ptr(categoryID)
	h.Frequency = []byte(frequency)
	h.ReminderTime = stringPtr(reminder)
	return h, nil
}

func scanHabitWithCategory(row interface{ Scan(...any) error }) (domain.HabitWithCategory, error) {
	var name, color sql.NullString
	h, err := scanHabit(row, &name, &color)
	if err != nil {
		return domain.HabitWithCategory{}, err
	}
	return domain.HabitWithCategory{
		Habit:         h,
		CategoryName:  stringPtr(name),
		CategoryColor: stringPtr(color),
	}, nil
}

func (r *habitsRepo) ListActiveHabits(ctx context.Context, owner domain.UserID) ([]domain.HabitWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+habitColumns+`, c.name, c.color
		FROM habits h
		LEFT JOIN categories c ON c.id = h.category_id
		WHERE h.user_id = $1 AND NOT h.is_archived
		ORDER BY h.id`,
		int64(owner),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []domain.HabitWithCategory{}
	for rows.Next() {
		h, err := scanHabitWithCategory(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *habitsRepo) GetHabit(ctx context.Context, owner domain.UserID, id int64) (domain.HabitWithCategory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+habitColumns+`, c.name, c.color
		FROM habits h
		LEFT JOIN categories c ON c.id = h.category_id
		WHERE h.id = $1 AND h.user_id = $2`,
		id, int64(owner),
	)
	h, err := scanHabitWithCategory(row)
	if err != nil {
		return domain.HabitWithCategory{}, mapError(err)
	}
	return h, nil
}

func (r *habitsRepo) CreateHabit(ctx context.Context, owner domain.UserID, h domain.Habit) (domain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO habits AS h (user_id, category_id, name, description, frequency, reminder_time)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::time)
		RETURNING `+habitColumns,
		int64(owner), nullInt64(h.CategoryID), h.Name, h.Description, string(h.Frequency), nullString(h.ReminderTime),
	)
	created, err := scanHabit(row)
	if err != nil {
		return domain.Habit{}, mapError(err)
	}
	return created, nil
}

func (r *habitsRepo) UpdateHabit(
	ctx context.Context,
	owner domain.UserID,
	h domain.Habit,
	archived *bool,
) (domain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE habits AS h
		SET category_id   = $1,
		    name          = $2,
		    description   = $3,
		    frequency     = $4::jsonb,
		    reminder_time = $5::time,
		    is_archived   = COALESCE($6::boolean, h.is_archived)
		WHERE h.id = $7 AND h.user_id = $8
		RETURNING `+habitColumns,
		nullInt64(h.CategoryID), h.Name, h.Description, string(h.Frequency), nullString(h.ReminderTime),
		nullBool(archived), h.ID, int64(owner),
	)
	updated, err := scanHabit(row)
	if err != nil {
		return domain.Habit{}, mapError(err)
	}
	return updated, nil
}

func (r *habitsRepo) DeleteHabit(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, int64(owner)))
}
