package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type checkInsRepo struct {
	q *gen.Queries
}

func (r *checkInsRepo) CreateCheckIn(
	ctx context.Context,
	owner domain.UserID,
	habitID int64,
	date string,
) (domain.CheckIn, bool, error) {
	row, err := r.q.CreateCheckIn(ctx, gen.CreateCheckInParams{
		CheckinDate: date,
		HabitID:     habitID,
		UserID:      int64(owner),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CheckIn{}, false, nil
	}
	if err != nil {
		return domain.CheckIn{}, false, mapError(err)
	}
	return mapCheckIn(row), true, nil
}

func (r *checkInsRepo) GetCheckIn(
	ctx context.Context,
	owner domain.UserID,
	habitID int64,
	date string,
) (domain.CheckIn, error) {
	row, err := r.q.GetCheckIn(ctx, gen.GetCheckInParams{
		HabitID:     habitID,
		CheckinDate: date,
		UserID:      int64(owner),
	})
	if err != nil {
		return domain.CheckIn{}, mapNotFound(err)
	}
	return mapCheckIn(row), nil
}

func (r *checkInsRepo) ListCheckIns(
	ctx context.Context,
	owner domain.UserID,
	f domain.CheckInFilter,
) ([]domain.CheckIn, error) {
	rows, err := r.q.ListCheckIns(ctx, gen.ListCheckInsParams{
		UserID:  int64(owner),
		HabitID: f.HabitID,
		From:    f.From,
		To:      f.To,
	})
	if err != nil {
		return nil, err
	}

	checkIns := make([]domain.CheckIn, len(rows))
	for i, row := range rows {
		checkIns[i] = mapCheckIn(row)
	}
	return checkIns, nil
}
