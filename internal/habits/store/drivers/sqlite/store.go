package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// FileDSN builds the DSN used for an on-disk database. The pragmas are applied
// by the driver to every pooled connection.
func FileDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is its own empty database, so the pool
	// must never grow past the one connection the schema lives on.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Stats() sql.DBStats { return s.db.Stats() }

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users           { return &usersRepo{q: s.q} }
func (s *Store) Categories() store.Categories { return &categoriesRepo{q: s.q} }
func (s *Store) Habits() store.Habits         { return &habitsRepo{q: s.q} }
func (s *Store) CheckIns() store.CheckIns     { return &checkInsRepo{q: s.q} }
func (s *Store) Goals() store.Goals           { return &goalsRepo{q: s.q} }
func (s *Store) GoalSteps() store.GoalSteps   { return &goalStepsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapError translates driver errors into store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var serr *msqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return store.ErrInvalidReference
		}
		// Without extended result codes only the primary code is set.
		if serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			switch msg := serr.Error(); {
			case strings.Contains(msg, "UNIQUE"):
				return store.ErrAlreadyExists
			case strings.Contains(msg, "FOREIGN KEY"):
				return store.ErrInvalidReference
			}
		}
	}
	return err
}

// requireRows turns a zero-row delete into ErrNotFound.
func requireRows(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullInt64Ptr(n sql.NullInt64) *int64 {
	if n.Valid {
		v := n.Int64
		return &v
	}
	return nil
}

func mapOptionalInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func mapOptionalInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapOptionalBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func ownerParam(owner domain.UserID) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(owner), Valid: true}
}

// parseTimestamp reads the ISO-8601 text written by the column defaults.
// A value that fails to parse maps to the zero time rather than failing
// the whole read.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           domain.UserID(row.ID),
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    parseTimestamp(row.CreatedAt),
	}
}

func mapCategory(row gen.Category) domain.Category {
	var owner *domain.UserID
	if row.UserID.Valid {
		id := domain.UserID(row.UserID.Int64)
		owner = &id
	}
	return domain.Category{
		ID:        row.ID,
		Name:      row.Name,
		Color:     row.Color,
		UserID:    owner,
		CreatedAt: parseTimestamp(row.CreatedAt),
	}
}

func mapHabit(row gen.Habit) domain.Habit {
	return domain.Habit{
		ID:           row.ID,
		UserID:       domain.UserID(row.UserID),
		CategoryID:   mapNullInt64Ptr(row.CategoryID),
		Name:         row.Name,
		Description:  row.Description,
		Frequency:    []byte(row.Frequency),
		ReminderTime: mapNullStringPtr(row.ReminderTime),
		IsArchived:   row.IsArchived,
		CreatedAt:    parseTimestamp(row.CreatedAt),
	}
}

func mapCheckIn(row gen.CheckIn) domain.CheckIn {
	return domain.CheckIn{
		ID:          row.ID,
		HabitID:     row.HabitID,
		CheckinDate: row.CheckinDate,
		CreatedAt:   parseTimestamp(row.CreatedAt),
	}
}

func mapGoal(row gen.Goal) domain.Goal {
	return domain.Goal{
		ID:          row.ID,
		UserID:      domain.UserID(row.UserID),
		Name:        row.Name,
		Description: row.Description,
		Deadline:    mapNullStringPtr(row.Deadline),
		CreatedAt:   parseTimestamp(row.CreatedAt),
	}
}

func mapGoalStep(row gen.GoalStep) domain.GoalStep {
	return domain.GoalStep{
		ID:          row.ID,
		GoalID:      row.GoalID,
		Description: row.Description,
		IsCompleted: row.IsCompleted,
		StepOrder:   int(row.StepOrder),
		CreatedAt:   parseTimestamp(row.CreatedAt),
	}
}
