package http

import (
	"net/http"

	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// HabitsHandler serves the caller's habits.
type HabitsHandler struct {
	HabitService *service.HabitService
}

// HandleList handles GET /api/habits
//
//	@Summary		List habits
//	@Description	Returns the caller's non-archived habits with their category name and color, ordered by id.
//	@Tags			Habits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		habitsdk.Habit
//	@Failure		401	{object}	habitsdk.APIError
//	@Failure		500	{object}	habitsdk.APIError
//	@Router			/api/habits [get].
func (h *HabitsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	habits, err := h.HabitService.List(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "list habits")
		return
	}

	out := make([]habitsdk.Habit, len(habits))
	for i, hb := range habits {
		out[i] = toHabitWithCategory(hb)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/habits/{id}
//
//	@Summary		Get habit
//	@Tags			Habits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Habit ID"
//	@Success		200	{object}	habitsdk.Habit
//	@Failure		400	{object}	habitsdk.APIError
//	@Failure		401	{object}	habitsdk.APIError
//	@Failure		404	{object}	habitsdk.APIError	"absent or not owned"
//	@Router			/api/habits/{id} [get].
func (h *HabitsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	habit, err := h.HabitService.Get(r.Context(), uid, id)
	if err != nil {
		writeServiceError(w, r, err, "get habit")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHabitWithCategory(habit))
}

// HandleCreate handles POST /api/habits
//
//	@Summary		Create habit
//	@Description	A null or absent frequency is stored as {"type":"daily"}. reminder_time accepts HH:MM or HH:MM:SS.
//	@Tags			Habits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.HabitRequest	true	"habit fields"
//	@Success		201		{object}	habitsdk.Habit
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		401		{object}	habitsdk.APIError
//	@Failure		500		{object}	habitsdk.APIError
//	@Router			/api/habits [post].
func (h *HabitsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	var req habitsdk.HabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	habit, err := h.HabitService.Create(r.Context(), uid, habitInput(req))
	if err != nil {
		writeServiceError(w, r, err, "create habit")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toHabit(habit))
}

// HandleUpdate handles PUT /api/habits/{id}
//
//	@Summary		Update habit
//	@Description	Replaces the habit. is_archived keeps its current value when absent.
//	@Tags			Habits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Habit ID"
//	@Param			request	body		habitsdk.HabitRequest	true	"habit fields"
//	@Success		200		{object}	habitsdk.Habit
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		401		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError	"Habit not found or not authorized"
//	@Router			/api/habits/{id} [put].
func (h *HabitsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req habitsdk.HabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	habit, err := h.HabitService.Update(r.Context(), uid, id, habitInput(req))
	if err != nil {
		writeServiceError(w, r, err, "update habit")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHabit(habit))
}

// HandleDelete handles DELETE /api/habits/{id}
//
//	@Summary		Delete habit
//	@Tags			Habits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Habit ID"
//	@Success		200	{object}	habitsdk.MessageResponse	"Habit deleted"
//	@Failure		400	{object}	habitsdk.APIError
//	@Failure		401	{object}	habitsdk.APIError
//	@Failure		404	{object}	habitsdk.APIError
//	@Router			/api/habits/{id} [delete].
func (h *HabitsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.HabitService.Delete(r.Context(), uid, id); err != nil {
		writeServiceError(w, r, err, "delete habit")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, habitsdk.MessageResponse{Message: "Habit deleted"})
}

func habitInput(req habitsdk.HabitRequest) service.HabitInput {
	return service.HabitInput{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Frequency:    req.Frequency,
		ReminderTime: req.ReminderTime,
		IsArchived:   req.IsArchived,
	}
}
