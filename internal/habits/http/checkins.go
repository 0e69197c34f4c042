package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// CheckInsHandler serves daily habit check-ins.
type CheckInsHandler struct {
	CheckInService *service.CheckInService
}

// HandleList handles GET /api/checkins
//
//	@Summary		List check-ins
//	@Description	Check-ins of the caller's habits ordered by date then habit.
//	@Tags			Check-ins
//	@Security		BearerAuth
//	@Produce		json
//	@Param			habit_id	query		int		false	"only this habit"
//	@Param			from		query		string	false	"inclusive YYYY-MM-DD"
//	@Param			to			query		string	false	"inclusive YYYY-MM-DD"
//	@Success		200			{array}		habitsdk.CheckIn
//	@Failure		400			{object}	habitsdk.APIError
//	@Failure		401			{object}	habitsdk.APIError
//	@Router			/api/checkins [get].
func (h *CheckInsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := domain.CheckInFilter{From: q.Get("from"), To: q.Get("to")}
	if raw := q.Get("habit_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			habitsdk.ErrInvalidRequest.WithMessage("Invalid habit_id").WriteError(w)
			return
		}
		f.HabitID = id
	}

	checkIns, err := h.CheckInService.List(r.Context(), uid, f)
	if err != nil {
		writeServiceError(w, r, err, "list check-ins")
		return
	}

	out := make([]habitsdk.CheckIn, len(checkIns))
	for i, c := range checkIns {
		out[i] = toCheckIn(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/checkins
//
//	@Summary		Check in
//	@Description	Marks a habit done for a day, today when date is absent.
//	@Description	A second check-in for the same day answers 200 "Already checked in" and writes nothing.
//	@Tags			Check-ins
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.CheckInRequest				true	"habit_id, date"
//	@Success		201		{object}	habitsdk.CheckIn					"created"
//	@Success		200		{object}	habitsdk.AlreadyCheckedInResponse	"already checked in"
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		401		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError	"Habit not found or not authorized"
//	@Router			/api/checkins [post].
func (h *CheckInsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	var req habitsdk.CheckInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.CheckInService.CheckIn(r.Context(), uid, req.HabitID, req.Date)
	if err != nil {
		writeServiceError(w, r, err, "check in")
		return
	}

	if !res.Created {
		httpx.WriteJSON(w, http.StatusOK, habitsdk.AlreadyCheckedInResponse{
			Message:     "Already checked in",
			HabitID:     res.CheckIn.HabitID,
			CheckinDate: res.CheckIn.CheckinDate,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCheckIn(res.CheckIn))
}
