package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

const checkInColumns = `c.id, c.habit_id, to_char(c.checkin_date, 'YYYY-MM-DD'), c.created_at`

type checkInsRepo struct {
	db dbtx
}

func scanCheckIn(row interface{ Scan(...any) error }) (domain.CheckIn, error) {
	var c domain.CheckIn
	if err := row.Scan(&c.ID, &c.HabitID, &c.CheckinDate, &c.CreatedAt); err != nil {
		return domain.CheckIn{}, err
	}
	return c, nil
}

func (r *checkInsRepo) CreateCheckIn(
	ctx context.Context,
	owner domain.UserID,
	habitID int64,
	date string,
) (domain.CheckIn, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO check_ins AS c (habit_id, checkin_date)
		SELECT h.id, $1::date
		FROM habits h
		WHERE h.id = $2 AND h.user_id = $3
		ON CONFLICT (habit_id, checkin_date) DO NOTHING
		RETURNING `+checkInColumns,
		date, habitID, int64(owner),
	)
	c, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CheckIn{}, false, nil
	}
	if err != nil {
		return domain.CheckIn{}, false, mapError(err)
	}
	return c, true, nil
}

func (r *checkInsRepo) GetCheckIn(
	ctx context.Context,
	owner domain.UserID,
	habitID int64,
	date string,
) (domain.CheckIn, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins c
		JOIN habits h ON h.id = c.habit_id
		WHERE c.habit_id = $1 AND c.checkin_date = $2::date AND h.user_id = $3`,
		habitID, date, int64(owner),
	)
	c, err := scanCheckIn(row)
	if err != nil {
		return domain.CheckIn{}, mapError(err)
	}
	return c, nil
}

func (r *checkInsRepo) ListCheckIns(
	ctx context.Context,
	owner domain.UserID,
	f domain.CheckInFilter,
) ([]domain.CheckIn, error) {
	var from, to sql.NullString
	if f.From != "" {
		from = sql.NullString{String: f.From, Valid: true}
	}
	if f.To != "" {
		to = sql.NullString{String: f.To, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = $1
		  AND ($2::bigint = 0 OR c.habit_id = $2::bigint)
		  AND ($3::date IS NULL OR c.checkin_date >= $3::date)
		  AND ($4::date IS NULL OR c.checkin_date <= $4::date)
		ORDER BY c.checkin_date, c.habit_id`,
		int64(owner), f.HabitID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := []domain.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}
