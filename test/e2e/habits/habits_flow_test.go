package habits_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/stretchr/testify/require"
)

// TestHabitsAndCheckIns covers habit CRUD and idempotent check-ins.
func TestHabitsAndCheckIns(t *testing.T) {
	client, cleanup := setupHabitsContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := registerUser(t, client, "sam")

	categories, err := session.ListCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	habit, err := session.CreateHabit(ctx, habitsdk.HabitRequest{
		Name:         "Read",
		CategoryID:   &categories[0].ID,
		Frequency:    json.RawMessage(`{"type":"weekly","days":[1,3,5]}`),
		ReminderTime: ptr("21:00"),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"weekly","days":[1,3,5]}`, string(habit.Frequency))
	require.Equal(t, "21:00:00", *habit.ReminderTime)

	listed, err := session.ListHabits(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, categories[0].Name, *listed[0].CategoryName)

	first, created, err := session.CheckIn(ctx, habitsdk.CheckInRequest{HabitID: habit.ID, Date: "2026-01-05"})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "2026-01-05", first.CheckinDate)

	again, created, err := session.CheckIn(ctx, habitsdk.CheckInRequest{HabitID: habit.ID, Date: "2026-01-05"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, habit.ID, again.HabitID)

	_, _, err = session.CheckIn(ctx, habitsdk.CheckInRequest{HabitID: habit.ID, Date: "2026-01-06"})
	require.NoError(t, err)

	checkIns, err := session.ListCheckIns(ctx, habitsdk.CheckInQuery{HabitID: habit.ID, From: "2026-01-05", To: "2026-01-05"})
	require.NoError(t, err)
	require.Len(t, checkIns, 1)

	checkIns, err = session.ListCheckIns(ctx, habitsdk.CheckInQuery{})
	require.NoError(t, err)
	require.Len(t, checkIns, 2)

	updated, err := session.UpdateHabit(ctx, habit.ID, habitsdk.HabitRequest{Name: "Read fiction"})
	require.NoError(t, err)
	require.Equal(t, "Read fiction", updated.Name)
	require.JSONEq(t, `{"type":"daily"}`, string(updated.Frequency))

	require.NoError(t, session.DeleteHabit(ctx, habit.ID))

	_, err = session.GetHabit(ctx, habit.ID)
	require.ErrorIs(t, err, habitsdk.ErrNotFound)

	checkIns, err = session.ListCheckIns(ctx, habitsdk.CheckInQuery{})
	require.NoError(t, err)
	require.Empty(t, checkIns, "check-ins go with their habit")
}

// TestGoalsAndSteps covers step ordering and derived goal status.
func TestGoalsAndSteps(t *testing.T) {
	client, cleanup := setupHabitsContainer(t)
	defer cleanup()
	ctx := t.Context()

	session := registerUser(t, client, "sam")

	goal, err := session.CreateGoal(ctx, habitsdk.GoalRequest{Name: "Run a marathon", Deadline: ptr("2099-01-01")})
	require.NoError(t, err)
	require.Equal(t, "in_progress", goal.Status)

	var stepIDs []int64
	for _, desc := range []string{"5k", "half", "full"} {
		step, err := session.AddStep(ctx, goal.ID, habitsdk.CreateStepRequest{Description: desc})
		require.NoError(t, err)
		stepIDs = append(stepIDs, step.ID)
	}

	steps, err := session.ListSteps(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, s := range steps {
		require.Equal(t, i, s.StepOrder)
	}

	for _, id := range stepIDs {
		_, err := session.UpdateStep(ctx, id, habitsdk.UpdateStepRequest{IsCompleted: ptr(true)})
		require.NoError(t, err)
	}

	goal, err = session.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Equal(t, 3, goal.StepsCompleted)
	require.Equal(t, "completed", goal.Status)

	late, err := session.CreateGoal(ctx, habitsdk.GoalRequest{Name: "Past", Deadline: ptr("2000-01-01")})
	require.NoError(t, err)
	require.Equal(t, "in_progress", late.Status, "no steps, nothing left undone")

	_, err = session.AddStep(ctx, late.ID, habitsdk.CreateStepRequest{Description: "start"})
	require.NoError(t, err)
	late, err = session.GetGoal(ctx, late.ID)
	require.NoError(t, err)
	require.Equal(t, "overdue", late.Status)

	goals, err := session.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.Equal(t, late.ID, goals[0].ID, "earliest deadline first")

	require.NoError(t, session.DeleteStep(ctx, stepIDs[0]))
	require.NoError(t, session.DeleteGoal(ctx, goal.ID))

	_, err = session.GetGoal(ctx, goal.ID)
	require.ErrorIs(t, err, habitsdk.ErrNotFound)
}

// TestOwnershipIsolation verifies one user cannot see or touch another's data.
func TestOwnershipIsolation(t *testing.T) {
	client, cleanup := setupHabitsContainer(t)
	defer cleanup()
	ctx := t.Context()

	owner := registerUser(t, client, "owner")
	intruder := registerUser(t, client, "intruder")

	habit, err := owner.CreateHabit(ctx, habitsdk.HabitRequest{Name: "Private"})
	require.NoError(t, err)
	goal, err := owner.CreateGoal(ctx, habitsdk.GoalRequest{Name: "Private"})
	require.NoError(t, err)
	step, err := owner.AddStep(ctx, goal.ID, habitsdk.CreateStepRequest{Description: "secret"})
	require.NoError(t, err)

	_, err = intruder.UpdateHabit(ctx, habit.ID, habitsdk.HabitRequest{Name: "Mine"})
	require.ErrorIs(t, err, habitsdk.ErrNotFound)
	require.ErrorIs(t, intruder.DeleteHabit(ctx, habit.ID), habitsdk.ErrNotFound)
	require.ErrorIs(t, intruder.DeleteGoal(ctx, goal.ID), habitsdk.ErrNotFound)
	require.ErrorIs(t, intruder.DeleteStep(ctx, step.ID), habitsdk.ErrNotFound)

	_, _, err = intruder.CheckIn(ctx, habitsdk.CheckInRequest{HabitID: habit.ID})
	require.ErrorIs(t, err, habitsdk.ErrNotFound)

	steps, err := intruder.ListSteps(ctx, goal.ID)
	require.NoError(t, err)
	require.Empty(t, steps)

	habits, err := intruder.ListHabits(ctx)
	require.NoError(t, err)
	require.Empty(t, habits)

	still, err := owner.GetHabit(ctx, habit.ID)
	require.NoError(t, err)
	require.Equal(t, "Private", still.Name)
}

func ptr[T any](v T) *T { return &v }
