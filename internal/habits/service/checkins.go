package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/pkg/slogx"
)

type CheckInService struct {
	Store store.Store
	Clock Clock
}

// CheckInResult reports whether a new row was written. When Created is false
// CheckIn is the row that was already there.
type CheckInResult struct {
	CheckIn domain.CheckIn
	Created bool
}

// CheckIn marks habitID done on date, defaulting to today. Checking in twice
// on the same day is not an error.
func (s *CheckInService) CheckIn(ctx context.Context, owner domain.UserID, habitID int64, date string) (CheckInResult, error) {
	if habitID <= 0 {
		return CheckInResult{}, invalid("habit_id required")
	}

	if date == "" {
		date = s.Clock.Today()
	} else {
		d, err := domain.ParseDate(date)
		if err != nil {
			return CheckInResult{}, invalid(err.Error())
		}
		date = d
	}

	var result CheckInResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ci, created, err := tx.CheckIns().CreateCheckIn(ctx, owner, habitID, date)
		if err != nil {
			return err
		}
		if created {
			result = CheckInResult{CheckIn: ci, Created: true}
			return nil
		}

		// Nothing inserted: either the day is taken or the habit is not ours.
		existing, err := tx.CheckIns().GetCheckIn(ctx, owner, habitID, date)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrHabitNotFound
			}
			return err
		}
		result = CheckInResult{CheckIn: existing}
		return nil
	})
	if err != nil {
		return CheckInResult{}, err
	}

	if !result.Created {
		slogx.FromContext(ctx).Debug("check-in already present",
			slog.Int64("habit_id", habitID), slog.String("date", date))
	}
	return result, nil
}

// List returns the owner's check-ins matching f.
func (s *CheckInService) List(ctx context.Context, owner domain.UserID, f domain.CheckInFilter) ([]domain.CheckIn, error) {
	if f.From != "" {
		d, err := domain.ParseDate(f.From)
		if err != nil {
			return nil, invalid("from: " + err.Error())
		}
		f.From = d
	}
	if f.To != "" {
		d, err := domain.ParseDate(f.To)
		if err != nil {
			return nil, invalid("to: " + err.Error())
		}
		f.To = d
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return nil, invalid("from must not be after to")
	}
	if f.HabitID < 0 {
		return nil, invalid("habit_id must be positive")
	}

	return s.Store.CheckIns().ListCheckIns(ctx, owner, f)
}
