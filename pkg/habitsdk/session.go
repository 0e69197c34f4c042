package habitsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// Session is an authenticated view of the API. Tokens are long lived and
// there is no refresh, so a Session simply carries the token it was given.
type Session struct {
	client *Client

	mu    sync.RWMutex
	token string
	user  User
}

// Token returns the bearer token in use.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the account the session was created for.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Me returns the decoded claims of the session token.
func (s *Session) Me(ctx context.Context) (*TokenClaims, error) {
	resp, err := s.doAuth(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ============================================================================
// Categories
// ============================================================================

func (s *Session) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.get(ctx, "/api/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var out Category
	if err := s.send(ctx, http.MethodPost, "/api/categories", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Habits
// ============================================================================

// ListHabits returns the caller's non-archived habits.
func (s *Session) ListHabits(ctx context.Context) ([]Habit, error) {
	var out []Habit
	if err := s.get(ctx, "/api/habits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetHabit(ctx context.Context, id int64) (*Habit, error) {
	var out Habit
	if err := s.get(ctx, "/api/habits/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateHabit(ctx context.Context, req HabitRequest) (*Habit, error) {
	var out Habit
	if err := s.send(ctx, http.MethodPost, "/api/habits", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateHabit(ctx context.Context, id int64, req HabitRequest) (*Habit, error) {
	var out Habit
	if err := s.send(ctx, http.MethodPut, "/api/habits/"+itoa(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteHabit(ctx context.Context, id int64) error {
	return s.delete(ctx, "/api/habits/"+itoa(id))
}

// ============================================================================
// Check-ins
// ============================================================================

func (s *Session) ListCheckIns(ctx context.Context, q CheckInQuery) ([]CheckIn, error) {
	params := url.Values{}
	if q.HabitID != 0 {
		params.Set("habit_id", itoa(q.HabitID))
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}

	path := "/api/checkins"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []CheckIn
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckIn marks a habit done for a day. created is false when the day was
// already checked in; the returned CheckIn then has no ID.
func (s *Session) CheckIn(ctx context.Context, req CheckInRequest) (ci *CheckIn, created bool, err error) {
	resp, err := s.doAuth(ctx, http.MethodPost, "/api/checkins", req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var out CheckIn
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, false, fmt.Errorf("failed to decode response: %w", err)
		}
		return &out, true, nil
	case http.StatusOK:
		var out AlreadyCheckedInResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, false, fmt.Errorf("failed to decode response: %w", err)
		}
		return &CheckIn{HabitID: out.HabitID, CheckinDate: out.CheckinDate}, false, nil
	default:
		return nil, false, parseErrorResponse(resp, body)
	}
}

// ============================================================================
// Goals
// ============================================================================

// ListGoals returns the caller's goals, earliest deadline first.
func (s *Session) ListGoals(ctx context.Context) ([]Goal, error) {
	var out []Goal
	if err := s.get(ctx, "/api/goals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetGoal(ctx context.Context, id int64) (*Goal, error) {
	var out Goal
	if err := s.get(ctx, "/api/goals/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateGoal(ctx context.Context, req GoalRequest) (*Goal, error) {
	var out Goal
	if err := s.send(ctx, http.MethodPost, "/api/goals", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateGoal(ctx context.Context, id int64, req GoalRequest) (*Goal, error) {
	var out Goal
	if err := s.send(ctx, http.MethodPut, "/api/goals/"+itoa(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGoal removes a goal together with its steps.
func (s *Session) DeleteGoal(ctx context.Context, id int64) error {
	return s.delete(ctx, "/api/goals/"+itoa(id))
}

func (s *Session) ListSteps(ctx context.Context, goalID int64) ([]GoalStep, error) {
	var out []GoalStep
	if err := s.get(ctx, "/api/goals/"+itoa(goalID)+"/steps", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) AddStep(ctx context.Context, goalID int64, req CreateStepRequest) (*GoalStep, error) {
	var out GoalStep
	path := "/api/goals/" + itoa(goalID) + "/steps"
	if err := s.send(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateStep(ctx context.Context, stepID int64, req UpdateStepRequest) (*GoalStep, error) {
	var out GoalStep
	if err := s.send(ctx, http.MethodPut, "/api/goal-steps/"+itoa(stepID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteStep(ctx context.Context, stepID int64) error {
	return s.delete(ctx, "/api/goal-steps/"+itoa(stepID))
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Session) get(ctx context.Context, path string, target any) error {
	return s.send(ctx, http.MethodGet, path, nil, target, http.StatusOK)
}

func (s *Session) send(ctx context.Context, method, path string, payload, target any, expected int) error {
	resp, err := s.doAuth(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}

func (s *Session) delete(ctx context.Context, path string) error {
	var out MessageResponse
	return s.send(ctx, http.MethodDelete, path, nil, &out, http.StatusOK)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
