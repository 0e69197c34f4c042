package habitsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("error document", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusNotFound}
		err := parseErrorResponse(resp, []byte(`{"error":"not_found","message":"Habit not found or not authorized"}`))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, "Habit not found or not authorized", apiErr.Message)
		require.ErrorIs(t, err, ErrNotFound)
		require.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("plain text body", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusTooManyRequests}
		err := parseErrorResponse(resp, []byte("slow down"))
		require.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("success", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusCreated}
		require.NoError(t, parseErrorResponse(resp, nil))
	})
}

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrConflict.WithMessage("User with that email or username already exists").WriteError(rec)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t,
		`{"error":"conflict","message":"User with that email or username already exists"}`,
		rec.Body.String())

	// the shared value is left untouched
	require.Equal(t, "already exists", ErrConflict.Message)
}

func TestSessionSendsBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		if r.URL.Path != "/api/checkins" || q.Get("habit_id") != "7" || q.Get("from") != "2026-10-01" || q.Has("to") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]CheckIn{{ID: 1, HabitID: 7, CheckinDate: "2026-10-02"}})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL + "/")
	s := client.NewSession("tok", User{ID: 3})

	got, err := s.ListCheckIns(context.Background(), CheckInQuery{HabitID: 7, From: "2026-10-01"})
	require.NoError(t, err)
	require.Equal(t, []CheckIn{{ID: 1, HabitID: 7, CheckinDate: "2026-10-02"}}, got)

	_, err = client.NewSession("wrong", User{}).ListCheckIns(context.Background(), CheckInQuery{})
	require.True(t, errors.Is(err, ErrUnauthorized))
}

func TestSessionCheckInOutcomes(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":9,"habit_id":2,"checkin_date":"2026-10-19"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Already checked in","habit_id":2,"checkin_date":"2026-10-19"}`))
	}))
	t.Cleanup(srv.Close)

	s := NewClient(srv.URL).NewSession("tok", User{})
	req := CheckInRequest{HabitID: 2, Date: "2026-10-19"}

	ci, created, err := s.CheckIn(context.Background(), req)
	require.NoError(t, err)
	require.True(t, created)
	require.EqualValues(t, 9, ci.ID)

	ci, created, err = s.CheckIn(context.Background(), req)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "2026-10-19", ci.CheckinDate)
}
