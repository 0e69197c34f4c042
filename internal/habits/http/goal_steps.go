package http

import (
	"net/http"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// HandleListSteps handles GET /api/goals/{goalId}/steps
//
//	@Summary		List goal steps
//	@Description	Steps ordered by step_order then id. A goal the caller does not own has no visible steps.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			goalId	path		int	true	"Goal ID"
//	@Success		200		{array}		habitsdk.GoalStep
//	@Failure		400		{object}	habitsdk.APIError
//	@Router			/api/goals/{goalId}/steps [get].
func (h *GoalsHandler) HandleListSteps(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, r, "goalId")
	if !ok {
		return
	}

	steps, err := h.GoalService.ListSteps(r.Context(), uid, goalID)
	if err != nil {
		writeServiceError(w, r, err, "list steps")
		return
	}

	out := make([]habitsdk.GoalStep, len(steps))
	for i, s := range steps {
		out[i] = toGoalStep(s)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAddStep handles POST /api/goals/{goalId}/steps
//
//	@Summary		Add goal step
//	@Description	Without step_order the step goes after the last one.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			goalId	path		int							true	"Goal ID"
//	@Param			request	body		habitsdk.CreateStepRequest	true	"description, step_order"
//	@Success		201		{object}	habitsdk.GoalStep
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError	"Goal not found or not authorized"
//	@Router			/api/goals/{goalId}/steps [post].
func (h *GoalsHandler) HandleAddStep(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, r, "goalId")
	if !ok {
		return
	}

	var req habitsdk.CreateStepRequest
	if !decodeBody(w, r, &req) {
		return
	}

	step, err := h.GoalService.AddStep(r.Context(), uid, goalID, req.Description, req.StepOrder)
	if err != nil {
		writeServiceError(w, r, err, "add step")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGoalStep(step))
}

// HandleUpdateStep handles PUT /api/goal-steps/{stepId}
//
//	@Summary		Update goal step
//	@Description	Partial update, absent fields are kept.
//	@Tags			Goals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			stepId	path		int							true	"Step ID"
//	@Param			request	body		habitsdk.UpdateStepRequest	true	"is_completed, description, step_order"
//	@Success		200		{object}	habitsdk.GoalStep
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError	"Step not found or not authorized"
//	@Router			/api/goal-steps/{stepId} [put].
func (h *GoalsHandler) HandleUpdateStep(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	stepID, ok := pathID(w, r, "stepId")
	if !ok {
		return
	}

	var req habitsdk.UpdateStepRequest
	if !decodeBody(w, r, &req) {
		return
	}

	step, err := h.GoalService.UpdateStep(r.Context(), uid, domain.GoalStepPatch{
		ID:          stepID,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		StepOrder:   req.StepOrder,
	})
	if err != nil {
		writeServiceError(w, r, err, "update step")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGoalStep(step))
}

// HandleDeleteStep handles DELETE /api/goal-steps/{stepId}
//
//	@Summary		Delete goal step
//	@Tags			Goals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			stepId	path		int	true	"Step ID"
//	@Success		200		{object}	habitsdk.MessageResponse	"Step deleted"
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		404		{object}	habitsdk.APIError
//	@Router			/api/goal-steps/{stepId} [delete].
func (h *GoalsHandler) HandleDeleteStep(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}
	stepID, ok := pathID(w, r, "stepId")
	if !ok {
		return
	}

	if err := h.GoalService.DeleteStep(r.Context(), uid, stepID); err != nil {
		writeServiceError(w, r, err, "delete step")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, habitsdk.MessageResponse{Message: "Step deleted"})
}
