package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInvalidReference is returned when a foreign key points nowhere,
	// e.g. a habit created with a category id that does not exist.
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
//
// Every user scoped method takes the owner as a domain.UserID and binds it in
// the statement itself. A row that exists but belongs to somebody else is
// indistinguishable from a missing row: both come back as ErrNotFound.
type Store interface {
	Users() Users
	Categories() Categories
	Habits() Habits
	CheckIns() CheckIns
	Goals() Goals
	GoalSteps() GoalSteps

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when it returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Stats reports connection pool statistics for metrics.
	Stats() sql.DBStats
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a user and returns it with its id. A taken username
	// or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByID(ctx context.Context, id domain.UserID) (domain.User, error)
}

type Categories interface {
	// ListVisibleCategories returns the shared categories plus the owner's
	// own, ordered by id.
	ListVisibleCategories(ctx context.Context, owner domain.UserID) ([]domain.Category, error)

	// GetVisibleCategory returns a category if it is shared or owned by owner.
	GetVisibleCategory(ctx context.Context, owner domain.UserID, id int64) (domain.Category, error)

	// CreateCategory inserts a category owned by owner.
	CreateCategory(ctx context.Context, owner domain.UserID, c domain.Category) (domain.Category, error)
}

type Habits interface {
	// ListActiveHabits returns non-archived habits joined with their category.
	ListActiveHabits(ctx context.Context, owner domain.UserID) ([]domain.HabitWithCategory, error)

	GetHabit(ctx context.Context, owner domain.UserID, id int64) (domain.HabitWithCategory, error)

	CreateHabit(ctx context.Context, owner domain.UserID, h domain.Habit) (domain.Habit, error)

	// UpdateHabit replaces name, description, category, frequency and
	// reminder. IsArchived is only written when archived is non-nil.
	UpdateHabit(ctx context.Context, owner domain.UserID, h domain.Habit, archived *bool) (domain.Habit, error)

	DeleteHabit(ctx context.Context, owner domain.UserID, id int64) error
}

type CheckIns interface {
	// CreateCheckIn inserts a check-in for an owned habit. It returns
	// created=false without error when nothing was inserted, either because
	// the day is already checked in or because the habit is not the owner's.
	// Use GetCheckIn to tell the two apart.
	CreateCheckIn(ctx context.Context, owner domain.UserID, habitID int64, date string) (domain.CheckIn, bool, error)

	GetCheckIn(ctx context.Context, owner domain.UserID, habitID int64, date string) (domain.CheckIn, error)

	ListCheckIns(ctx context.Context, owner domain.UserID, f domain.CheckInFilter) ([]domain.CheckIn, error)
}

type Goals interface {
	// ListGoals returns goals with step counts, deadline ascending (nulls
	// last). Status is left empty for the service to derive.
	ListGoals(ctx context.Context, owner domain.UserID) ([]domain.GoalSummary, error)

	GetGoal(ctx context.Context, owner domain.UserID, id int64) (domain.GoalSummary, error)

	CreateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error)

	UpdateGoal(ctx context.Context, owner domain.UserID, g domain.Goal) (domain.Goal, error)

	// DeleteGoal removes the goal, its steps cascade.
	DeleteGoal(ctx context.Context, owner domain.UserID, id int64) error
}

type GoalSteps interface {
	// ListSteps returns the steps of an owned goal ordered by step_order, id.
	// An unowned goal simply has no visible steps.
	ListSteps(ctx context.Context, owner domain.UserID, goalID int64) ([]domain.GoalStep, error)

	// CreateStep appends a step to an owned goal. A nil order takes the next
	// free position. ErrNotFound when the goal is not the owner's.
	CreateStep(ctx context.Context, owner domain.UserID, goalID int64, description string, order *int) (domain.GoalStep, error)

	UpdateStep(ctx context.Context, owner domain.UserID, p domain.GoalStepPatch) (domain.GoalStep, error)

	DeleteStep(ctx context.Context, owner domain.UserID, id int64) error
}
