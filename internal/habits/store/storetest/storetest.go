// Package storetest holds behaviour checks every store driver must pass.
package storetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/stretchr/testify/require"
)

// Run exercises s, which must be freshly migrated and empty apart from the
// seeded categories.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	t.Run("users", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = s.Users().CreateUser(ctx, domain.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, alice, got.ID)
		require.False(t, got.CreatedAt.IsZero())

		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err = s.Users().GetUserByID(ctx, bob)
		require.NoError(t, err)
		require.Equal(t, "bob", got.Username)
	})

	t.Run("categories", func(t *testing.T) {
		shared, err := s.Categories().ListVisibleCategories(ctx, alice)
		require.NoError(t, err)
		require.Len(t, shared, 5)
		for _, c := range shared {
			require.Nil(t, c.UserID)
		}

		own, err := s.Categories().CreateCategory(ctx, alice, domain.Category{Name: "Music", Color: "#000000"})
		require.NoError(t, err)
		require.NotNil(t, own.UserID)
		require.Equal(t, alice, *own.UserID)

		visible, err := s.Categories().ListVisibleCategories(ctx, alice)
		require.NoError(t, err)
		require.Len(t, visible, 6)

		visible, err = s.Categories().ListVisibleCategories(ctx, bob)
		require.NoError(t, err)
		require.Len(t, visible, 5)

		_, err = s.Categories().GetVisibleCategory(ctx, bob, own.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Categories().GetVisibleCategory(ctx, alice, own.ID)
		require.NoError(t, err)
		require.Equal(t, "Music", got.Name)
	})

	t.Run("habits", func(t *testing.T) {
		categories, err := s.Categories().ListVisibleCategories(ctx, alice)
		require.NoError(t, err)
		categoryID := categories[0].ID

		reminder := "07:30:00"
		created, err := s.Habits().CreateHabit(ctx, alice, domain.Habit{
			CategoryID:   &categoryID,
			Name:         "Read",
			Description:  "20 pages",
			Frequency:    json.RawMessage(`{"type":"weekly","days":[1,3]}`),
			ReminderTime: &reminder,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, alice, created.UserID)
		require.False(t, created.IsArchived)
		require.JSONEq(t, `{"type":"weekly","days":[1,3]}`, string(created.Frequency))
		require.Equal(t, &reminder, created.ReminderTime)

		got, err := s.Habits().GetHabit(ctx, alice, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Read", got.Name)
		require.NotNil(t, got.CategoryName)
		require.Equal(t, categories[0].Name, *got.CategoryName)

		_, err = s.Habits().GetHabit(ctx, bob, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		list, err := s.Habits().ListActiveHabits(ctx, bob)
		require.NoError(t, err)
		require.Empty(t, list)

		created.Name = "Read more"
		created.CategoryID = nil
		created.ReminderTime = nil
		_, err = s.Habits().UpdateHabit(ctx, bob, created, nil)
		require.ErrorIs(t, err, store.ErrNotFound)

		archived := true
		updated, err := s.Habits().UpdateHabit(ctx, alice, created, &archived)
		require.NoError(t, err)
		require.Equal(t, "Read more", updated.Name)
		require.Nil(t, updated.CategoryID)
		require.Nil(t, updated.ReminderTime)
		require.True(t, updated.IsArchived)

		list, err = s.Habits().ListActiveHabits(ctx, alice)
		require.NoError(t, err)
		require.Empty(t, list)

		// nil leaves the archived flag untouched
		updated, err = s.Habits().UpdateHabit(ctx, alice, updated, nil)
		require.NoError(t, err)
		require.True(t, updated.IsArchived)

		missing := int64(999999)
		_, err = s.Habits().CreateHabit(ctx, alice, domain.Habit{Name: "x", Frequency: domain.DefaultFrequency, CategoryID: &missing})
		require.ErrorIs(t, err, store.ErrInvalidReference)

		require.ErrorIs(t, s.Habits().DeleteHabit(ctx, bob, created.ID), store.ErrNotFound)
		require.NoError(t, s.Habits().DeleteHabit(ctx, alice, created.ID))
		require.ErrorIs(t, s.Habits().DeleteHabit(ctx, alice, created.ID), store.ErrNotFound)
	})

	t.Run("check-ins", func(t *testing.T) {
		habit, err := s.Habits().CreateHabit(ctx, alice, domain.Habit{Name: "Walk", Frequency: domain.DefaultFrequency})
		require.NoError(t, err)
		other, err := s.Habits().CreateHabit(ctx, alice, domain.Habit{Name: "Stretch", Frequency: domain.DefaultFrequency})
		require.NoError(t, err)

		ci, created, err := s.CheckIns().CreateCheckIn(ctx, alice, habit.ID, "2026-10-18")
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "2026-10-18", ci.CheckinDate)
		require.Equal(t, habit.ID, ci.HabitID)

		_, created, err = s.CheckIns().CreateCheckIn(ctx, alice, habit.ID, "2026-10-18")
		require.NoError(t, err)
		require.False(t, created)

		existing, err := s.CheckIns().GetCheckIn(ctx, alice, habit.ID, "2026-10-18")
		require.NoError(t, err)
		require.Equal(t, ci.ID, existing.ID)

		_, created, err = s.CheckIns().CreateCheckIn(ctx, bob, habit.ID, "2026-10-19")
		require.NoError(t, err)
		require.False(t, created)
		_, err = s.CheckIns().GetCheckIn(ctx, bob, habit.ID, "2026-10-19")
		require.ErrorIs(t, err, store.ErrNotFound)

		for _, d := range []string{"2026-10-19", "2026-10-20"} {
			_, _, err = s.CheckIns().CreateCheckIn(ctx, alice, habit.ID, d)
			require.NoError(t, err)
		}
		_, _, err = s.CheckIns().CreateCheckIn(ctx, alice, other.ID, "2026-10-19")
		require.NoError(t, err)

		all, err := s.CheckIns().ListCheckIns(ctx, alice, domain.CheckInFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)

		one, err := s.CheckIns().ListCheckIns(ctx, alice, domain.CheckInFilter{HabitID: habit.ID})
		require.NoError(t, err)
		require.Len(t, one, 3)

		window, err := s.CheckIns().ListCheckIns(ctx, alice, domain.CheckInFilter{From: "2026-10-19", To: "2026-10-19"})
		require.NoError(t, err)
		require.Len(t, window, 2)
		for _, c := range window {
			require.Equal(t, "2026-10-19", c.CheckinDate)
		}

		none, err := s.CheckIns().ListCheckIns(ctx, bob, domain.CheckInFilter{})
		require.NoError(t, err)
		require.Empty(t, none)

		// deleting the habit cascades to its check-ins
		require.NoError(t, s.Habits().DeleteHabit(ctx, alice, habit.ID))
		all, err = s.CheckIns().ListCheckIns(ctx, alice, domain.CheckInFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("goals and steps", func(t *testing.T) {
		later := "2026-12-31"
		sooner := "2026-11-01"
		g1, err := s.Goals().CreateGoal(ctx, alice, domain.Goal{Name: "Later", Deadline: &later})
		require.NoError(t, err)
		g2, err := s.Goals().CreateGoal(ctx, alice, domain.Goal{Name: "No deadline"})
		require.NoError(t, err)
		g3, err := s.Goals().CreateGoal(ctx, alice, domain.Goal{Name: "Sooner", Deadline: &sooner})
		require.NoError(t, err)
		require.Equal(t, &later, g1.Deadline)
		require.Nil(t, g2.Deadline)

		goals, err := s.Goals().ListGoals(ctx, alice)
		require.NoError(t, err)
		require.Len(t, goals, 3)
		require.Equal(t, []int64{g3.ID, g1.ID, g2.ID}, []int64{goals[0].ID, goals[1].ID, goals[2].ID})
		require.Zero(t, goals[0].StepsTotal)

		s1, err := s.GoalSteps().CreateStep(ctx, alice, g1.ID, "first", nil)
		require.NoError(t, err)
		require.Equal(t, 0, s1.StepOrder)
		require.False(t, s1.IsCompleted)
		s2, err := s.GoalSteps().CreateStep(ctx, alice, g1.ID, "second", nil)
		require.NoError(t, err)
		require.Equal(t, 1, s2.StepOrder)
		explicit := 10
		s3, err := s.GoalSteps().CreateStep(ctx, alice, g1.ID, "third", &explicit)
		require.NoError(t, err)
		require.Equal(t, 10, s3.StepOrder)

		_, err = s.GoalSteps().CreateStep(ctx, bob, g1.ID, "sneaky", nil)
		require.ErrorIs(t, err, store.ErrNotFound)

		done := true
		updated, err := s.GoalSteps().UpdateStep(ctx, alice, domain.GoalStepPatch{ID: s1.ID, IsCompleted: &done})
		require.NoError(t, err)
		require.True(t, updated.IsCompleted)
		require.Equal(t, "first", updated.Description)
		require.Equal(t, 0, updated.StepOrder)

		_, err = s.GoalSteps().UpdateStep(ctx, bob, domain.GoalStepPatch{ID: s1.ID, IsCompleted: &done})
		require.ErrorIs(t, err, store.ErrNotFound)

		summary, err := s.Goals().GetGoal(ctx, alice, g1.ID)
		require.NoError(t, err)
		require.Equal(t, 3, summary.StepsTotal)
		require.Equal(t, 1, summary.StepsCompleted)

		_, err = s.Goals().GetGoal(ctx, bob, g1.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		steps, err := s.GoalSteps().ListSteps(ctx, alice, g1.ID)
		require.NoError(t, err)
		require.Equal(t, []int64{s1.ID, s2.ID, s3.ID}, []int64{steps[0].ID, steps[1].ID, steps[2].ID})

		steps, err = s.GoalSteps().ListSteps(ctx, bob, g1.ID)
		require.NoError(t, err)
		require.Empty(t, steps)

		g1.Name = "Renamed"
		g1.Deadline = nil
		_, err = s.Goals().UpdateGoal(ctx, bob, g1)
		require.ErrorIs(t, err, store.ErrNotFound)
		renamed, err := s.Goals().UpdateGoal(ctx, alice, g1)
		require.NoError(t, err)
		require.Equal(t, "Renamed", renamed.Name)
		require.Nil(t, renamed.Deadline)

		require.ErrorIs(t, s.GoalSteps().DeleteStep(ctx, bob, s2.ID), store.ErrNotFound)
		require.NoError(t, s.GoalSteps().DeleteStep(ctx, alice, s2.ID))

		require.NoError(t, s.Goals().DeleteGoal(ctx, alice, g1.ID))
		_, err = s.GoalSteps().UpdateStep(ctx, alice, domain.GoalStepPatch{ID: s3.ID, IsCompleted: &done})
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Goals().DeleteGoal(ctx, alice, g1.ID), store.ErrNotFound)
	})

	t.Run("transactions", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Goals().CreateGoal(ctx, bob, domain.Goal{Name: "rolled back"})
			require.NoError(t, err)
			return store.ErrNotFound
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		goals, err := s.Goals().ListGoals(ctx, bob)
		require.NoError(t, err)
		require.Empty(t, goals)

		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Goals().CreateGoal(ctx, bob, domain.Goal{Name: "kept"})
			return err
		}))

		goals, err = s.Goals().ListGoals(ctx, bob)
		require.NoError(t, err)
		require.Len(t, goals, 1)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}

func createUser(t *testing.T, s store.Store, name string) domain.UserID {
	t.Helper()

	u, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u.ID
}
