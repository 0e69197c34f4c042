package habitsdk

import "encoding/json"

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public part of an account. The password hash never leaves the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	// Token is an HS256 JWT to send as "Authorization: Bearer {token}"
	Token string `json:"token"`

	User User `json:"user"`
}

// TokenClaims are the decoded claims of the caller's token.
type TokenClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Issuer    string `json:"iss"`
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	TokenID   string `json:"jti"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	User TokenClaims `json:"user"`
}

// ============================================================================
// Category Types
// ============================================================================

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	// UserID is null for the shared categories every user sees
	UserID    *int64 `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// CreateCategoryRequest is the body of POST /api/categories. Color defaults to #6366f1.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ============================================================================
// Habit Types
// ============================================================================

type Habit struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	CategoryID  *int64 `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Frequency is an opaque JSON object, e.g. {"type":"daily"}
	Frequency json.RawMessage `json:"frequency" swaggertype:"object"`

	// ReminderTime is HH:MM:SS or null
	ReminderTime *string `json:"reminder_time"`
	IsArchived   bool    `json:"is_archived"`
	CreatedAt    string  `json:"created_at"`

	// Category fields are only filled on reads
	CategoryName  *string `json:"category_name,omitempty"`
	CategoryColor *string `json:"category_color,omitempty"`
}

// HabitRequest is the body of POST /api/habits and PUT /api/habits/{id}.
type HabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// CategoryID 0 or null means no category
	CategoryID *int64 `json:"category_id,omitempty"`

	// Frequency absent or null defaults to {"type":"daily"}
	Frequency json.RawMessage `json:"frequency,omitempty" swaggertype:"object"`

	// ReminderTime accepts HH:MM or HH:MM:SS; empty clears it
	ReminderTime *string `json:"reminder_time,omitempty"`

	// IsArchived is only read on update; absent keeps the current value
	IsArchived *bool `json:"is_archived,omitempty"`
}

// ============================================================================
// Check-in Types
// ============================================================================

type CheckIn struct {
	ID          int64  `json:"id"`
	HabitID     int64  `json:"habit_id"`
	CheckinDate string `json:"checkin_date"`
}

// CheckInRequest is the body of POST /api/checkins. Date defaults to today.
type CheckInRequest struct {
	HabitID int64  `json:"habit_id"`
	Date    string `json:"date,omitempty"`
}

// AlreadyCheckedInResponse is returned with 200 when the day was already taken.
type AlreadyCheckedInResponse struct {
	Message     string `json:"message"`
	HabitID     int64  `json:"habit_id"`
	CheckinDate string `json:"checkin_date"`
}

// CheckInQuery filters GET /api/checkins. Zero values are omitted.
type CheckInQuery struct {
	HabitID int64
	From    string // inclusive YYYY-MM-DD
	To      string // inclusive YYYY-MM-DD
}

// ============================================================================
// Goal Types
// ============================================================================

type Goal struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
	CreatedAt   string  `json:"created_at"`

	StepsTotal     int `json:"steps_total"`
	StepsCompleted int `json:"steps_completed"`

	// Status is one of completed, overdue or in_progress
	Status string `json:"status"`
}

// GoalRequest is the body of POST /api/goals and PUT /api/goals/{id}.
type GoalRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

type GoalStep struct {
	ID          int64  `json:"id"`
	GoalID      int64  `json:"goal_id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	StepOrder   int    `json:"step_order"`
	CreatedAt   string `json:"created_at"`
}

// CreateStepRequest is the body of POST /api/goals/{goalId}/steps.
// A nil StepOrder appends the step after the last one.
type CreateStepRequest struct {
	Description string `json:"description"`
	StepOrder   *int   `json:"step_order,omitempty"`
}

// UpdateStepRequest is the body of PUT /api/goal-steps/{stepId}. Nil fields are kept.
type UpdateStepRequest struct {
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	StepOrder   *int    `json:"step_order,omitempty"`
}

// ============================================================================
// Common Types
// ============================================================================

// MessageResponse is returned by deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
