package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/habits/internal/habits/http"
	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testIssuer = "habits-test"
	testSecret = "0123456789abcdef0123456789abcdef"
)

var roomy = httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

// newTestAPI builds the full router over a fresh in-memory database with
// "today" pinned to 2026-10-19 UTC.
func newTestAPI(t *testing.T, tweak ...func(*httpapi.Router)) *testAPI {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)

	clock := service.Clock{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) },
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(jwtx.NewCommonHS256([]byte(testSecret), testIssuer), "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     testIssuer,
		TTL:        time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	router.HabitService = &service.HabitService{Store: st}
	router.CategoryService = &service.CategoryService{Store: st}
	router.CheckInService = &service.CheckInService{Store: st, Clock: clock}
	router.GoalService = &service.GoalService{Store: st, Clock: clock}
	router.Limits = httpapi.Limits{Strict: roomy, Moderate: roomy, Lenient: roomy}

	for _, fn := range tweak {
		fn(router)
	}
	router.ApplyRoutes()

	return &testAPI{t: t, handler: router}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(a.t, err)
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// register creates name and returns its token and id.
func (a *testAPI) register(name string) (string, int64) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/auth/register", "", habitsdk.RegisterRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "correct horse",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[habitsdk.AuthResponse](a.t, rec)
	return res.Token, res.User.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[habitsdk.APIError](t, rec)
	require.Equal(t, code, body.Code)
	if message != "" {
		require.Equal(t, message, body.Message)
	}
}

func path(format string, id int64) string {
	return strings.Replace(format, "{id}", strconv.FormatInt(id, 10), 1)
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	token, id := api.register("sam")
	require.NotEmpty(t, token)
	require.Positive(t, id)

	t.Run("duplicate email or username", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/auth/register", "", habitsdk.RegisterRequest{
			Username: "sam", Email: "other@example.com", Password: "pw",
		})
		requireError(t, rec, http.StatusConflict, "conflict", "User with that email or username already exists")

		rec = api.do(http.MethodPost, "/api/auth/register", "", habitsdk.RegisterRequest{
			Username: "other", Email: "sam@example.com", Password: "pw",
		})
		requireError(t, rec, http.StatusConflict, "conflict", "")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/auth/register", "", habitsdk.RegisterRequest{Username: "  ", Email: "x@example.com", Password: "pw"})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "username, email and password required")

		rec = api.do(http.MethodPost, "/api/auth/login", "", habitsdk.LoginRequest{Email: "sam@example.com"})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "email & password required")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/auth/register", "", "{not json")
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := api.do(http.MethodPost, "/api/auth/login", "", habitsdk.LoginRequest{Email: "sam@example.com", Password: "nope"})
		unknown := api.do(http.MethodPost, "/api/auth/login", "", habitsdk.LoginRequest{Email: "ghost@example.com", Password: "nope"})

		requireError(t, wrong, http.StatusUnauthorized, "unauthorized", "Wrong email or password")
		requireError(t, unknown, http.StatusUnauthorized, "unauthorized", "Wrong email or password")
		require.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("login", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/auth/login", "", habitsdk.LoginRequest{Email: "sam@example.com", Password: "correct horse"})
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[habitsdk.AuthResponse](t, rec)
		require.Equal(t, habitsdk.User{ID: id, Username: "sam", Email: "sam@example.com"}, res.User)
		require.NotContains(t, rec.Body.String(), "password")
	})
}

func TestMeEchoesClaims(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, id := api.register("alex")

	rec := api.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	me := decode[habitsdk.MeResponse](t, rec).User
	require.Equal(t, id, me.ID)
	require.Equal(t, "alex", me.Username)
	require.Equal(t, "alex@example.com", me.Email)
	require.Equal(t, testIssuer, me.Issuer)
	require.Equal(t, strconv.FormatInt(id, 10), me.Subject)
	require.NotEmpty(t, me.TokenID)
	require.Equal(t, time.Hour, time.Duration(me.ExpiresAt-me.IssuedAt)*time.Second)
}

func TestBearerRequired(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, p := range []string{"/api/auth/me", "/api/habits", "/api/checkins", "/api/categories", "/api/goals"} {
		rec := api.do(http.MethodGet, p, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, p)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
		require.Equal(t, "unauthorized", decode[habitsdk.APIError](t, rec).Code)
	}

	rec := api.do(http.MethodGet, "/api/habits", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
}

func TestHabitsCRUD(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, id := api.register("sam")

	t.Run("null frequency defaults to daily", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/habits", token, `{"name":"Read","frequency":null}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		h := decode[habitsdk.Habit](t, rec)
		require.Equal(t, "Read", h.Name)
		require.Equal(t, id, h.UserID)
		require.JSONEq(t, `{"type":"daily"}`, string(h.Frequency))
		require.Nil(t, h.CategoryID)
		require.Nil(t, h.ReminderTime)
	})

	t.Run("validation", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/habits", token, habitsdk.HabitRequest{Name: " "})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "name required")

		rec = api.do(http.MethodPost, "/api/habits", token, `{"name":"Run","frequency":"daily"}`)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")

		rec = api.do(http.MethodPost, "/api/habits", token, `{"name":"Run","reminder_time":"soon"}`)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
	})

	var habitID int64
	t.Run("create with category and reminder", func(t *testing.T) {
		cats := decode[[]habitsdk.Category](t, api.do(http.MethodGet, "/api/categories", token, nil))
		require.NotEmpty(t, cats)

		rec := api.do(http.MethodPost, "/api/habits", token, map[string]any{
			"name":          "Stretch",
			"category_id":   cats[0].ID,
			"frequency":     map[string]any{"type": "weekly", "days": []int{1, 3}},
			"reminder_time": "07:30",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		h := decode[habitsdk.Habit](t, rec)
		habitID = h.ID
		require.Equal(t, "07:30:00", *h.ReminderTime)
		require.Equal(t, cats[0].ID, *h.CategoryID)

		listed := decode[[]habitsdk.Habit](t, api.do(http.MethodGet, "/api/habits", token, nil))
		require.Len(t, listed, 2)
		require.Equal(t, habitID, listed[1].ID)
		require.Equal(t, cats[0].Name, *listed[1].CategoryName)
		require.Equal(t, cats[0].Color, *listed[1].CategoryColor)
	})

	t.Run("update keeps archived flag unless given", func(t *testing.T) {
		rec := api.do(http.MethodPut, path("/api/habits/{id}", habitID), token, habitsdk.HabitRequest{Name: "Stretch more"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.False(t, decode[habitsdk.Habit](t, rec).IsArchived)

		archived := true
		rec = api.do(http.MethodPut, path("/api/habits/{id}", habitID), token, habitsdk.HabitRequest{Name: "Stretch more", IsArchived: &archived})
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, decode[habitsdk.Habit](t, rec).IsArchived)

		listed := decode[[]habitsdk.Habit](t, api.do(http.MethodGet, "/api/habits", token, nil))
		require.Len(t, listed, 1, "archived habits are not listed")

		rec = api.do(http.MethodGet, path("/api/habits/{id}", habitID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad path id", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/habits/abc", token, nil)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
		rec = api.do(http.MethodDelete, "/api/habits/0", token, nil)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, path("/api/habits/{id}", habitID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Habit deleted", decode[habitsdk.MessageResponse](t, rec).Message)

		rec = api.do(http.MethodDelete, path("/api/habits/{id}", habitID), token, nil)
		requireError(t, rec, http.StatusNotFound, "not_found", "Habit not found or not authorized")
	})
}

func TestCategories(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	sam, _ := api.register("sam")
	alex, _ := api.register("alex")

	shared := decode[[]habitsdk.Category](t, api.do(http.MethodGet, "/api/categories", sam, nil))
	require.NotEmpty(t, shared)
	for _, c := range shared {
		require.Nil(t, c.UserID)
	}

	rec := api.do(http.MethodPost, "/api/categories", sam, habitsdk.CreateCategoryRequest{Name: "Music"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[habitsdk.Category](t, rec)
	require.Equal(t, "#6366f1", created.Color)
	require.NotNil(t, created.UserID)

	require.Len(t, decode[[]habitsdk.Category](t, api.do(http.MethodGet, "/api/categories", sam, nil)), len(shared)+1)
	require.Len(t, decode[[]habitsdk.Category](t, api.do(http.MethodGet, "/api/categories", alex, nil)), len(shared))

	// alex cannot attach sam's category
	rec = api.do(http.MethodPost, "/api/habits", alex, habitsdk.HabitRequest{Name: "Piano", CategoryID: &created.ID})
	requireError(t, rec, http.StatusBadRequest, "invalid_request", "category not found")

	rec = api.do(http.MethodPost, "/api/categories", sam, habitsdk.CreateCategoryRequest{})
	requireError(t, rec, http.StatusBadRequest, "invalid_request", "name required")
}

func TestCheckIns(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, _ := api.register("sam")
	other, _ := api.register("alex")

	h := decode[habitsdk.Habit](t, api.do(http.MethodPost, "/api/habits", token, habitsdk.HabitRequest{Name: "Read"}))

	t.Run("second check-in on the same day", func(t *testing.T) {
		req := habitsdk.CheckInRequest{HabitID: h.ID, Date: "2026-10-18"}

		rec := api.do(http.MethodPost, "/api/checkins", token, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		first := decode[habitsdk.CheckIn](t, rec)
		require.Equal(t, "2026-10-18", first.CheckinDate)

		rec = api.do(http.MethodPost, "/api/checkins", token, req)
		require.Equal(t, http.StatusOK, rec.Code)
		again := decode[habitsdk.AlreadyCheckedInResponse](t, rec)
		require.Equal(t, habitsdk.AlreadyCheckedInResponse{
			Message: "Already checked in", HabitID: h.ID, CheckinDate: "2026-10-18",
		}, again)

		all := decode[[]habitsdk.CheckIn](t, api.do(http.MethodGet, "/api/checkins", token, nil))
		require.Len(t, all, 1)
	})

	t.Run("date defaults to today", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/checkins", token, habitsdk.CheckInRequest{HabitID: h.ID})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "2026-10-19", decode[habitsdk.CheckIn](t, rec).CheckinDate)
	})

	t.Run("filters", func(t *testing.T) {
		got := decode[[]habitsdk.CheckIn](t, api.do(http.MethodGet, "/api/checkins?from=2026-10-19&to=2026-10-19", token, nil))
		require.Len(t, got, 1)
		require.Equal(t, "2026-10-19", got[0].CheckinDate)

		got = decode[[]habitsdk.CheckIn](t, api.do(http.MethodGet, "/api/checkins?habit_id="+strconv.FormatInt(h.ID, 10), token, nil))
		require.Len(t, got, 2)
		require.Equal(t, "2026-10-18", got[0].CheckinDate)

		rec := api.do(http.MethodGet, "/api/checkins?habit_id=x", token, nil)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
		rec = api.do(http.MethodGet, "/api/checkins?from=2026-10-20&to=2026-10-01", token, nil)
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "from must not be after to")
	})

	t.Run("validation", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/checkins", token, habitsdk.CheckInRequest{})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "habit_id required")

		rec = api.do(http.MethodPost, "/api/checkins", token, habitsdk.CheckInRequest{HabitID: h.ID, Date: "19/10/2026"})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
	})

	t.Run("someone else's habit", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/checkins", other, habitsdk.CheckInRequest{HabitID: h.ID, Date: "2026-10-18"})
		requireError(t, rec, http.StatusNotFound, "not_found", "Habit not found or not authorized")

		require.Empty(t, decode[[]habitsdk.CheckIn](t, api.do(http.MethodGet, "/api/checkins", other, nil)))
	})
}

func TestGoalStatus(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, _ := api.register("sam")

	newGoal := func(name string, deadline *string, steps, done int) habitsdk.Goal {
		rec := api.do(http.MethodPost, "/api/goals", token, habitsdk.GoalRequest{Name: name, Deadline: deadline})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		g := decode[habitsdk.Goal](t, rec)

		completed := true
		for i := range steps {
			rec := api.do(http.MethodPost, "/api/goals/"+strconv.FormatInt(g.ID, 10)+"/steps", token,
				habitsdk.CreateStepRequest{Description: "step " + strconv.Itoa(i)})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			step := decode[habitsdk.GoalStep](t, rec)
			require.Equal(t, i, step.StepOrder)

			if i < done {
				rec = api.do(http.MethodPut, path("/api/goal-steps/{id}", step.ID), token,
					habitsdk.UpdateStepRequest{IsCompleted: &completed})
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			}
		}

		rec = api.do(http.MethodGet, path("/api/goals/{id}", g.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[habitsdk.Goal](t, rec)
	}

	yesterday := "2026-10-18"
	nextMonth := "2026-11-19"

	done := newGoal("done", nil, 3, 3)
	require.Equal(t, "completed", done.Status)
	require.Equal(t, 3, done.StepsTotal)
	require.Equal(t, 3, done.StepsCompleted)

	late := newGoal("late", &yesterday, 2, 1)
	require.Equal(t, "overdue", late.Status)

	empty := newGoal("empty", nil, 0, 0)
	require.Equal(t, "in_progress", empty.Status)

	soon := newGoal("soon", &nextMonth, 1, 0)
	require.Equal(t, "in_progress", soon.Status)

	t.Run("list orders by deadline with nulls last", func(t *testing.T) {
		goals := decode[[]habitsdk.Goal](t, api.do(http.MethodGet, "/api/goals", token, nil))
		require.Len(t, goals, 4)

		names := make([]string, len(goals))
		for i, g := range goals {
			names[i] = g.Name
		}
		require.Equal(t, []string{"late", "soon", "done", "empty"}, names)
		require.Equal(t, "overdue", goals[0].Status)
	})

	t.Run("bad deadline", func(t *testing.T) {
		bad := "tomorrow"
		rec := api.do(http.MethodPost, "/api/goals", token, habitsdk.GoalRequest{Name: "x", Deadline: &bad})
		requireError(t, rec, http.StatusBadRequest, "invalid_request", "")
	})

	t.Run("update clears deadline", func(t *testing.T) {
		blank := ""
		rec := api.do(http.MethodPut, path("/api/goals/{id}", late.ID), token, habitsdk.GoalRequest{Name: "late", Deadline: &blank})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		g := decode[habitsdk.Goal](t, rec)
		require.Nil(t, g.Deadline)
		require.Equal(t, "in_progress", g.Status)
		require.Equal(t, 2, g.StepsTotal)
	})

	t.Run("delete cascades steps", func(t *testing.T) {
		rec := api.do(http.MethodDelete, path("/api/goals/{id}", done.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Goal deleted", decode[habitsdk.MessageResponse](t, rec).Message)

		steps := decode[[]habitsdk.GoalStep](t, api.do(http.MethodGet, "/api/goals/"+strconv.FormatInt(done.ID, 10)+"/steps", token, nil))
		require.Empty(t, steps)
	})
}

func TestGoalSteps(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	token, _ := api.register("sam")

	g := decode[habitsdk.Goal](t, api.do(http.MethodPost, "/api/goals", token, habitsdk.GoalRequest{Name: "Marathon"}))
	stepsPath := "/api/goals/" + strconv.FormatInt(g.ID, 10) + "/steps"

	ten := 10
	rec := api.do(http.MethodPost, stepsPath, token, habitsdk.CreateStepRequest{Description: "race", StepOrder: &ten})
	require.Equal(t, http.StatusCreated, rec.Code)
	race := decode[habitsdk.GoalStep](t, rec)

	rec = api.do(http.MethodPost, stepsPath, token, habitsdk.CreateStepRequest{Description: "taper"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 11, decode[habitsdk.GoalStep](t, rec).StepOrder)

	zero := 0
	rec = api.do(http.MethodPost, stepsPath, token, habitsdk.CreateStepRequest{Description: "buy shoes", StepOrder: &zero})
	require.Equal(t, http.StatusCreated, rec.Code)

	steps := decode[[]habitsdk.GoalStep](t, api.do(http.MethodGet, stepsPath, token, nil))
	require.Len(t, steps, 3)
	require.Equal(t, "buy shoes", steps[0].Description)
	require.Equal(t, "race", steps[1].Description)
	require.Equal(t, "taper", steps[2].Description)

	rec = api.do(http.MethodPost, stepsPath, token, habitsdk.CreateStepRequest{Description: ""})
	requireError(t, rec, http.StatusBadRequest, "invalid_request", "description required")

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		desc := "run the race"
		rec := api.do(http.MethodPut, path("/api/goal-steps/{id}", race.ID), token, habitsdk.UpdateStepRequest{Description: &desc})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		got := decode[habitsdk.GoalStep](t, rec)
		require.Equal(t, desc, got.Description)
		require.Equal(t, 10, got.StepOrder)
		require.False(t, got.IsCompleted)
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, path("/api/goal-steps/{id}", race.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Step deleted", decode[habitsdk.MessageResponse](t, rec).Message)

		rec = api.do(http.MethodDelete, path("/api/goal-steps/{id}", race.ID), token, nil)
		requireError(t, rec, http.StatusNotFound, "not_found", "Step not found or not authorized")
	})
}

func TestOwnershipIsolation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	owner, _ := api.register("owner")
	intruder, _ := api.register("intruder")

	habit := decode[habitsdk.Habit](t, api.do(http.MethodPost, "/api/habits", owner, habitsdk.HabitRequest{Name: "Read"}))
	goal := decode[habitsdk.Goal](t, api.do(http.MethodPost, "/api/goals", owner, habitsdk.GoalRequest{Name: "Learn"}))
	step := decode[habitsdk.GoalStep](t, api.do(http.MethodPost, "/api/goals/"+strconv.FormatInt(goal.ID, 10)+"/steps", owner,
		habitsdk.CreateStepRequest{Description: "chapter one"}))

	done := true
	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		message string
	}{
		{"get habit", http.MethodGet, path("/api/habits/{id}", habit.ID), nil, "Habit not found or not authorized"},
		{"update habit", http.MethodPut, path("/api/habits/{id}", habit.ID), habitsdk.HabitRequest{Name: "mine"}, "Habit not found or not authorized"},
		{"delete habit", http.MethodDelete, path("/api/habits/{id}", habit.ID), nil, "Habit not found or not authorized"},
		{"get goal", http.MethodGet, path("/api/goals/{id}", goal.ID), nil, "Goal not found or not authorized"},
		{"update goal", http.MethodPut, path("/api/goals/{id}", goal.ID), habitsdk.GoalRequest{Name: "mine"}, "Goal not found or not authorized"},
		{"delete goal", http.MethodDelete, path("/api/goals/{id}", goal.ID), nil, "Goal not found or not authorized"},
		{"add step", http.MethodPost, "/api/goals/" + strconv.FormatInt(goal.ID, 10) + "/steps", habitsdk.CreateStepRequest{Description: "x"}, "Goal not found or not authorized"},
		{"update step", http.MethodPut, path("/api/goal-steps/{id}", step.ID), habitsdk.UpdateStepRequest{IsCompleted: &done}, "Step not found or not authorized"},
		{"delete step", http.MethodDelete, path("/api/goal-steps/{id}", step.ID), nil, "Step not found or not authorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, intruder, tt.body)
			requireError(t, rec, http.StatusNotFound, "not_found", tt.message)
		})
	}

	t.Run("steps of someone else's goal are invisible", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/goals/"+strconv.FormatInt(goal.ID, 10)+"/steps", intruder, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("owner still sees everything untouched", func(t *testing.T) {
		got := decode[habitsdk.Habit](t, api.do(http.MethodGet, path("/api/habits/{id}", habit.ID), owner, nil))
		require.Equal(t, "Read", got.Name)

		steps := decode[[]habitsdk.GoalStep](t, api.do(http.MethodGet, "/api/goals/"+strconv.FormatInt(goal.ID, 10)+"/steps", owner, nil))
		require.Len(t, steps, 1)
		require.False(t, steps[0].IsCompleted)
	})
}

func TestStrictLimitOnLogin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, func(r *httpapi.Router) {
		r.Limits.Strict = httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	})

	body := habitsdk.LoginRequest{Email: "ghost@example.com", Password: "x"}
	for range 2 {
		require.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/auth/login", "", body).Code)
	}

	rec := api.do(http.MethodPost, "/api/auth/login", "", body)
	requireError(t, rec, http.StatusTooManyRequests, "rate_limited", "")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// register shares the budget
	rec = api.do(http.MethodPost, "/api/auth/register", "", habitsdk.RegisterRequest{Username: "a", Email: "a@example.com", Password: "pw"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	metrics, err := httpx.NewMetrics(reg)
	require.NoError(t, err)

	api := newTestAPI(t, func(r *httpapi.Router) {
		r.Metrics = metrics
		r.AllowedOrigins = []string{"https://habits.example.com"}
	})

	t.Run("probes", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		live := decode[habitsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", live.Status)
		require.Equal(t, "test", live.Version)

		rec = api.do(http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		ready := decode[habitsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", ready.Checks.Database)
	})

	t.Run("request id", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/livez", "", nil)
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/habits", nil)
		req.Header.Set("Origin", "https://habits.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "https://habits.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("metrics", func(t *testing.T) {
		api.register("sam")

		rec := api.do(http.MethodGet, "/metrics", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, `habits_http_requests_total{method="POST",route="POST /api/auth/register",status="201"} 1`)
		require.Contains(t, body, "habits_http_request_duration_seconds")
	})

	t.Run("swagger", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/swagger/doc.json", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Habits API")
	})
}
