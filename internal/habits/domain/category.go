package domain

import "time"

type Category struct {
	ID        int64
	Name      string
	Color     string
	UserID    *UserID // nil for the shared categories every user sees
	CreatedAt time.Time
}

// DefaultCategoryColor is used when a category is created without one.
const DefaultCategoryColor = "#6366f1"
