package http

import (
	"net/http"

	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// CategoriesHandler serves global and user owned categories.
type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// HandleList handles GET /api/categories
//
//	@Summary		List categories
//	@Description	Shared categories plus the caller's own, ordered by id.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		habitsdk.Category
//	@Failure		401	{object}	habitsdk.APIError
//	@Router			/api/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	cats, err := h.CategoryService.List(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "list categories")
		return
	}

	out := make([]habitsdk.Category, len(cats))
	for i, c := range cats {
		out[i] = toCategory(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/categories
//
//	@Summary		Create category
//	@Description	Creates a category visible to the caller only. color defaults to #6366f1.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.CreateCategoryRequest	true	"name, color"
//	@Success		201		{object}	habitsdk.Category
//	@Failure		400		{object}	habitsdk.APIError
//	@Failure		401		{object}	habitsdk.APIError
//	@Router			/api/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := owner(w, r)
	if !ok {
		return
	}

	var req habitsdk.CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cat, err := h.CategoryService.Create(r.Context(), uid, req.Name, req.Color)
	if err != nil {
		writeServiceError(w, r, err, "create category")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategory(cat))
}
