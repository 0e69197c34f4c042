package domain

import "time"

type GoalStatus string

const (
	GoalCompleted  GoalStatus = "completed"
	GoalOverdue    GoalStatus = "overdue"
	GoalInProgress GoalStatus = "in_progress"
)

type Goal struct {
	ID          int64
	UserID      UserID
	Name        string
	Description string
	Deadline    *string // YYYY-MM-DD
	CreatedAt   time.Time
}

// GoalSummary is a goal together with its step counts and derived status.
type GoalSummary struct {
	Goal

	StepsTotal     int
	StepsCompleted int
	Status         GoalStatus
}

type GoalStep struct {
	ID          int64
	GoalID      int64
	Description string
	IsCompleted bool
	StepOrder   int
	CreatedAt   time.Time
}

// GoalStepPatch carries a partial step update; nil fields are left as is.
type GoalStepPatch struct {
	ID          int64
	Description *string
	IsCompleted *bool
	StepOrder   *int
}

// DeriveGoalStatus classifies a goal. A goal is completed once it has at
// least one step and every step is done. It is overdue when some step is
// still open and the deadline is a calendar day before today, so a goal
// without steps is never overdue. Both dates are YYYY-MM-DD so string order
// is date order.
func DeriveGoalStatus(total, completed int, deadline *string, today string) GoalStatus {
	if total > 0 && completed >= total {
		return GoalCompleted
	}
	if completed < total && deadline != nil && *deadline != "" && *deadline < today {
		return GoalOverdue
	}
	return GoalInProgress
}
