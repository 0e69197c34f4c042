package http

import (
	"net/http"

	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// GoalsHandler serves goals and their steps.
type GoalsHandler struct {
	GoalService *service.GoalService
}

// HandleList handles GET /api/goals
//
//	@Summary		List goals
//	@Description	The caller's goals with step counts and derived status, earliest deadline first, goals without one last.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		habitsdk.Goal
//	@Failure		401	{object}	habitsdk.APIError
//	@Router			/api/goals [get].
func (h *GoalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	goals, err := h.GoalService.List(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "list goals")
		return
	}

	out := make([]habitsdk.Goal, len(goals))
	for i, g := range goals {
		out[i] = toGoal(g)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/goals/{id}
//
//	@Summary		Get goal
//	@Tags			Goals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Goal ID"
//	@Success		200	{object}	habitsdk.Goal
//	@Failure		400	{object}	habitsdk.APIError
//	@Failure		404	{object}	habitsdk.APIError
//	@Router			/api/goals/{id} [get].
func (h *GoalsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	goal, err := h.GoalService.Get(r.Context(), uid, id)
	if err != nil {
		writeServiceError(w, r, err, "get goal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGoal(goal))
}

// HandleCreate handles POST /api/goals
//
//	@Summary		Create goal
//	@Description	An empty deadline means none; otherwise it must be YYYY-MM-DD.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.GoalRequest	true	"name, description, deadline"
//	@Success		201		{object}	habitsdk.Goal
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		401		{object}	habitsdk.APIError
//	@Router			/api/goals [post].
func (h *GoalsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	var req habitsdk.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.GoalService.Create(r.Context(), uid, goalInput(req))
	if err != nil {
		writeServiceError(w, r, err, "create goal")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGoal(goal))
}

// HandleUpdate handles PUT /api/goals/{id}
//
//	@Summary		Update goal
//	@Tags			Goals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Goal ID"
//	@Param			request	body		habitsdk.GoalRequest	true	"name, description, deadline"
//	@Success		200		{object}	habitsdk.Goal
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError	"Goal not found or not authorized"
//	@Router			/api/goals/{id} [put].
func (h *GoalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req habitsdk.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.GoalService.Update(r.Context(), uid, id, goalInput(req))
	if err != nil {
		writeServiceError(w, r, err, "update goal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGoal(goal))
}

// HandleDelete handles DELETE /api/goals/{id}
//
//	@Summary		Delete goal
//	@Description	Deletes the goal and all of its steps.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Goal ID"
//	@Success		200	{object}	habitsdk.MessageResponse	"Goal deleted"
//	@Failure		400	{object}	habitsdk.APIError
//	@Failure		404	{object}	habitsdk.APIError
//	@Router			/api/goals/{id} [delete].
func (h *GoalsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.GoalService.Delete(r.Context(), uid, id); err != nil {
		writeServiceError(w, r, err, "delete goal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, habitsdk.MessageResponse{Message: "Goal deleted"})
}

func goalInput(req habitsdk.GoalRequest) service.GoalInput {
	return service.GoalInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
}
