package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/slogx"
)

// maxBodyBytes caps request bodies. Every payload here is a handful of fields.
const maxBodyBytes = 64 << 10

// owner returns the authenticated user. Only AuthnMiddleware puts it there.
func owner(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		habitsdk.ErrUnauthorized.WriteError(w)
		return 0, false
	}
	return domain.UserID(id), true
}

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		habitsdk.ErrInvalidRequest.WithMessage("Invalid " + name).WriteError(w)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON body into v, answering 400 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		habitsdk.ErrInvalidRequest.WithMessage("Invalid JSON in request body").WriteError(w)
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto API errors. Anything it
// does not recognise is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var input *service.InputError
	switch {
	case errors.As(err, &input):
		habitsdk.ErrInvalidRequest.WithMessage(input.Message).WriteError(w)
	case errors.Is(err, service.ErrUserExists):
		habitsdk.ErrConflict.WithMessage("User with that email or username already exists").WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		habitsdk.ErrUnauthorized.WithMessage("Wrong email or password").WriteError(w)
	case errors.Is(err, service.ErrHabitNotFound):
		habitsdk.ErrNotFound.WithMessage("Habit not found or not authorized").WriteError(w)
	case errors.Is(err, service.ErrGoalNotFound):
		habitsdk.ErrNotFound.WithMessage("Goal not found or not authorized").WriteError(w)
	case errors.Is(err, service.ErrStepNotFound):
		habitsdk.ErrNotFound.WithMessage("Step not found or not authorized").WriteError(w)
	case errors.Is(err, service.ErrCategoryNotFound):
		habitsdk.ErrNotFound.WithMessage("Category not found").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "op", op, "error", err)
		habitsdk.ErrServerError.WriteError(w)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalUserID(id *domain.UserID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func toUser(u domain.User) habitsdk.User {
	return habitsdk.User{ID: int64(u.ID), Username: u.Username, Email: u.Email}
}

func toCategory(c domain.Category) habitsdk.Category {
	return habitsdk.Category{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		UserID:    optionalUserID(c.UserID),
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func toHabit(h domain.Habit) habitsdk.Habit {
	return habitsdk.Habit{
		ID:           h.ID,
		UserID:       int64(h.UserID),
		CategoryID:   h.CategoryID,
		Name:         h.Name,
		Description:  h.Description,
		Frequency:    h.Frequency,
		ReminderTime: h.ReminderTime,
		IsArchived:   h.IsArchived,
		CreatedAt:    formatTime(h.CreatedAt),
	}
}

func toHabitWithCategory(h domain.HabitWithCategory) habitsdk.Habit {
	out := toHabit(h.Habit)
	out.CategoryName = h.CategoryName
	out.CategoryColor = h.CategoryColor
	return out
}

func toCheckIn(c domain.CheckIn) habitsdk.CheckIn {
	return habitsdk.CheckIn{ID: c.ID, HabitID: c.HabitID, CheckinDate: c.CheckinDate}
}

func toGoal(g domain.GoalSummary) habitsdk.Goal {
	return habitsdk.Goal{
		ID:             g.ID,
		UserID:         int64(g.UserID),
		Name:           g.Name,
		Description:    g.Description,
		Deadline:       g.Deadline,
		CreatedAt:      formatTime(g.CreatedAt),
		StepsTotal:     g.StepsTotal,
		StepsCompleted: g.StepsCompleted,
		Status:         string(g.Status),
	}
}

func toGoalStep(s domain.GoalStep) habitsdk.GoalStep {
	return habitsdk.GoalStep{
		ID:          s.ID,
		GoalID:      s.GoalID,
		Description: s.Description,
		IsCompleted: s.IsCompleted,
		StepOrder:   s.StepOrder,
		CreatedAt:   formatTime(s.CreatedAt),
	}
}
