package domain

import "time"

// UserID identifies the owner of every user scoped row. Repositories take it
// as a distinct type so an owner filter can't be forgotten or swapped with a
// resource id by accident.
type UserID int64

type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string // bcrypt encoded
	CreatedAt    time.Time
}
