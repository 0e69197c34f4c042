package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
)

// ListSteps returns the steps of an owned goal. Asking for someone else's
// goal yields an empty list rather than an error.
func (s *GoalService) ListSteps(ctx context.Context, owner domain.UserID, goalID int64) ([]domain.GoalStep, error) {
	return s.Store.GoalSteps().ListSteps(ctx, owner, goalID)
}

// AddStep appends a step. A nil order places it after the last step.
func (s *GoalService) AddStep(
	ctx context.Context,
	owner domain.UserID,
	goalID int64,
	description string,
	order *int,
) (domain.GoalStep, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.GoalStep{}, invalid("description required")
	}

	step, err := s.Store.GoalSteps().CreateStep(ctx, owner, goalID, description, order)
	if errors.Is(err, store.ErrNotFound) {
		return domain.GoalStep{}, ErrGoalNotFound
	}
	return step, err
}

// UpdateStep applies the non-nil fields of p.
func (s *GoalService) UpdateStep(ctx context.Context, owner domain.UserID, p domain.GoalStepPatch) (domain.GoalStep, error) {
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		if d == "" {
			return domain.GoalStep{}, invalid("description must not be empty")
		}
		p.Description = &d
	}

	step, err := s.Store.GoalSteps().UpdateStep(ctx, owner, p)
	if errors.Is(err, store.ErrNotFound) {
		return domain.GoalStep{}, ErrStepNotFound
	}
	return step, err
}

func (s *GoalService) DeleteStep(ctx context.Context, owner domain.UserID, id int64) error {
	err := s.Store.GoalSteps().DeleteStep(ctx, owner, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrStepNotFound
	}
	return err
}
