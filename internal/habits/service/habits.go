package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
)

// HabitInput is the writable part of a habit. IsArchived is only honoured
// on update.
type HabitInput struct {
	Name         string
	Description  string
	CategoryID   *int64
	Frequency    json.RawMessage
	ReminderTime *string
	IsArchived   *bool
}

type HabitService struct {
	Store store.Store
}

// List returns the owner's non-archived habits.
func (s *HabitService) List(ctx context.Context, owner domain.UserID) ([]domain.HabitWithCategory, error) {
	return s.Store.Habits().ListActiveHabits(ctx, owner)
}

func (s *HabitService) Get(ctx context.Context, owner domain.UserID, id int64) (domain.HabitWithCategory, error) {
	h, err := s.Store.Habits().GetHabit(ctx, owner, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.HabitWithCategory{}, ErrHabitNotFound
	}
	return h, err
}

func (s *HabitService) Create(ctx context.Context, owner domain.UserID, in HabitInput) (domain.Habit, error) {
	h, err := s.build(ctx, owner, in)
	if err != nil {
		return domain.Habit{}, err
	}

	created, err := s.Store.Habits().CreateHabit(ctx, owner, h)
	if errors.Is(err, store.ErrInvalidReference) {
		return domain.Habit{}, invalid("category not found")
	}
	return created, err
}

// Update replaces every field of the habit. The archived flag is kept when
// in.IsArchived is nil.
func (s *HabitService) Update(ctx context.Context, owner domain.UserID, id int64, in HabitInput) (domain.Habit, error) {
	h, err := s.build(ctx, owner, in)
	if err != nil {
		return domain.Habit{}, err
	}
	h.ID = id

	updated, err := s.Store.Habits().UpdateHabit(ctx, owner, h, in.IsArchived)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Habit{}, ErrHabitNotFound
	case errors.Is(err, store.ErrInvalidReference):
		return domain.Habit{}, invalid("category not found")
	}
	return updated, err
}

func (s *HabitService) Delete(ctx context.Context, owner domain.UserID, id int64) error {
	err := s.Store.Habits().DeleteHabit(ctx, owner, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrHabitNotFound
	}
	return err
}

// build validates in and applies the defaults shared by create and update.
func (s *HabitService) build(ctx context.Context, owner domain.UserID, in HabitInput) (domain.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Habit{}, invalid("name required")
	}

	frequency, err := domain.NormalizeFrequency(in.Frequency)
	if err != nil {
		return domain.Habit{}, invalid(err.Error())
	}

	reminder, err := domain.NormalizeReminderTime(in.ReminderTime)
	if err != nil {
		return domain.Habit{}, invalid(err.Error())
	}

	var categoryID *int64
	if in.CategoryID != nil && *in.CategoryID != 0 {
		if _, err := s.Store.Categories().GetVisibleCategory(ctx, owner, *in.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Habit{}, invalid("category not found")
			}
			return domain.Habit{}, err
		}
		id := *in.CategoryID
		categoryID = &id
	}

	return domain.Habit{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		CategoryID:   categoryID,
		Frequency:    frequency,
		ReminderTime: reminder,
	}, nil
}
