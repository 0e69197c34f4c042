package postgres

import (
	"context"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

const userColumns = `id, username, email, password_hash, created_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	if err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.ID = domain.UserID(id)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return created, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, int64(id))
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return u, nil
}
