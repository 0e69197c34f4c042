package sqlite

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type habitsRepo struct {
	q *gen.Queries
}

func (r *habitsRepo) ListActiveHabits(ctx context.Context, owner domain.UserID) ([]domain.HabitWithCategory, error) {
	rows, err := r.q.ListActiveHabits(ctx, int64(owner))
	if err != nil {
		return nil, err
	}

	habits := make([]domain.HabitWithCategory, len(rows))
	for i, row := range rows {
		habits[i] = domain.HabitWithCategory{
			Habit: mapHabit(gen.Habit{
				ID:           row.ID,
				UserID:       row.UserID,
				CategoryID:   row.CategoryID,
				Name:         row.Name,
				Description:  row.Description,
				Frequency:    row.Frequency,
				ReminderTime: row.ReminderTime,
				IsArchived:   row.IsArchived,
				CreatedAt:    row.CreatedAt,
			}),
			CategoryName:  mapNullStringPtr(row.CategoryName),
			CategoryColor: mapNullStringPtr(row.CategoryColor),
		}
	}
	return habits, nil
}

func (r *habitsRepo) GetHabit(ctx context.Context, owner domain.UserID, id int64) (domain.HabitWithCategory, error) {
	row, err := r.q.GetHabit(ctx, gen.GetHabitParams{ID: id, UserID: int64(owner)})
	if err != nil {
		return domain.HabitWithCategory{}, mapNotFound(err)
	}

	return domain.HabitWithCategory{
		Habit: mapHabit(gen.Habit{
			ID:           row.ID,
			UserID:       row.UserID,
			CategoryID:   row.CategoryID,
			Name:         row.Name,
			Description:  row.Description,
			Frequency:    row.Frequency,
			ReminderTime: row.ReminderTime,
			IsArchived:   row.IsArchived,
			CreatedAt:    row.CreatedAt,
		}),
		CategoryName:  mapNullStringPtr(row.CategoryName),
		CategoryColor: mapNullStringPtr(row.CategoryColor),
	}, nil
}

func (r *habitsRepo) CreateHabit(ctx context.Context, owner domain.UserID, h domain.Habit) (domain.Habit, error) {
	row, err := r.q.CreateHabit(ctx, gen.CreateHabitParams{
		UserID:       int64(owner),
		CategoryID:   mapOptionalInt64(h.CategoryID),
		Name:         h.Name,
		Description:  h.Description,
		Frequency:    string(h.Frequency),
		ReminderTime: mapOptionalString(h.ReminderTime),
	})
	if err != nil {
		return domain.Habit{}, mapError(err)
	}
	return mapHabit(row), nil
}

func (r *habitsRepo) UpdateHabit(
	ctx context.Context,
	owner domain.UserID,
	h domain.Habit,
	archived *bool,
) (domain.Habit, error) {
	row, err := r.q.UpdateHabit(ctx, gen.UpdateHabitParams{
		CategoryID:   mapOptionalInt64(h.CategoryID),
		Name:         h.Name,
		Description:  h.Description,
		Frequency:    string(h.Frequency),
		ReminderTime: mapOptionalString(h.ReminderTime),
		IsArchived:   mapOptionalBool(archived),
		ID:           h.ID,
		UserID:       int64(owner),
	})
	if err != nil {
		return domain.Habit{}, mapError(err)
	}
	return mapHabit(row), nil
}

func (r *habitsRepo) DeleteHabit(ctx context.Context, owner domain.UserID, id int64) error {
	return requireRows(r.q.DeleteHabit(ctx, gen.DeleteHabitParams{ID: id, UserID: int64(owner)}))
}
