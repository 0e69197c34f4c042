package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
)

type GoalInput struct {
	Name        string
	Description string
	Deadline    *string
}

// GoalService manages goals and their steps. Status is derived on every read
// against Clock.
type GoalService struct {
	Store store.Store
	Clock Clock
}

func (s *GoalService) List(ctx context.Context, owner domain.UserID) ([]domain.GoalSummary, error) {
	goals, err := s.Store.Goals().ListGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	for i := range goals {
		goals[i].Status = deriveStatus(goals[i], today)
	}
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, owner domain.UserID, id int64) (domain.GoalSummary, error) {
	g, err := s.Store.Goals().GetGoal(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.GoalSummary{}, ErrGoalNotFound
		}
		return domain.GoalSummary{}, err
	}
	g.Status = deriveStatus(g, s.Clock.Today())
	return g, nil
}

// Create inserts a goal. A new goal has no steps yet.
func (s *GoalService) Create(ctx context.Context, owner domain.UserID, in GoalInput) (domain.GoalSummary, error) {
	g, err := buildGoal(in)
	if err != nil {
		return domain.GoalSummary{}, err
	}

	created, err := s.Store.Goals().CreateGoal(ctx, owner, g)
	if err != nil {
		return domain.GoalSummary{}, err
	}

	summary := domain.GoalSummary{Goal: created}
	summary.Status = deriveStatus(summary, s.Clock.Today())
	return summary, nil
}

// Update replaces name, description and deadline and returns the goal with
// its current step counts.
func (s *GoalService) Update(ctx context.Context, owner domain.UserID, id int64, in GoalInput) (domain.GoalSummary, error) {
	g, err := buildGoal(in)
	if err != nil {
		return domain.GoalSummary{}, err
	}
	g.ID = id

	var summary domain.GoalSummary
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Goals().UpdateGoal(ctx, owner, g); err != nil {
			return err
		}
		got, err := tx.Goals().GetGoal(ctx, owner, id)
		summary = got
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.GoalSummary{}, ErrGoalNotFound
		}
		return domain.GoalSummary{}, err
	}

	summary.Status = deriveStatus(summary, s.Clock.Today())
	return summary, nil
}

// Delete removes the goal and, by cascade, its steps.
func (s *GoalService) Delete(ctx context.Context, owner domain.UserID, id int64) error {
	err := s.Store.Goals().DeleteGoal(ctx, owner, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func buildGoal(in GoalInput) (domain.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Goal{}, invalid("name required")
	}

	var deadline *string
	if in.Deadline != nil && strings.TrimSpace(*in.Deadline) != "" {
		d, err := domain.ParseDate(strings.TrimSpace(*in.Deadline))
		if err != nil {
			return domain.Goal{}, invalid("deadline: " + err.Error())
		}
		deadline = &d
	}

	return domain.Goal{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Deadline:    deadline,
	}, nil
}

func deriveStatus(g domain.GoalSummary, today string) domain.GoalStatus {
	return domain.DeriveGoalStatus(g.StepsTotal, g.StepsCompleted, g.Deadline, today)
}
