package http

import (
	"net/http"

	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/pkg/habitsdk"
	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// AuthHandler serves registration, login and the token echo endpoint.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /api/auth/register
//
//	@Summary		Register
//	@Description	Creates an account and returns a bearer token for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.RegisterRequest	true	"username, email, password"
//	@Success		201		{object}	habitsdk.AuthResponse		"token and user"
//	@Failure		400		{object}	habitsdk.APIError			"missing field"
//	@Failure		409		{object}	habitsdk.APIError			"username or email taken"
//	@Failure		429		{object}	habitsdk.APIError			"rate limited"
//	@Failure		500		{object}	habitsdk.APIError
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req habitsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "register")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, habitsdk.AuthResponse{
		Token: res.Token,
		User:  toUser(res.User),
	})
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Login
//	@Description	Exchanges email and password for a bearer token.
//	@Description	Unknown emails and wrong passwords get the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		habitsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	habitsdk.AuthResponse	"token and user"
//	@Failure		400		{object}	habitsdk.APIError		"missing field"
//	@Failure		401		{object}	habitsdk.APIError		"Wrong email or password"
//	@Failure		429		{object}	habitsdk.APIError		"rate limited"
//	@Failure		500		{object}	habitsdk.APIError
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req habitsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, habitsdk.AuthResponse{
		Token: res.Token,
		User:  toUser(res.User),
	})
}

// HandleMe handles GET /api/auth/me
//
//	@Summary		Current user
//	@Description	Echoes the decoded claims of the caller's token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	habitsdk.MeResponse
//	@Failure		401	{object}	habitsdk.APIError
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		habitsdk.ErrUnauthorized.WriteError(w)
		return
	}

	me := habitsdk.TokenClaims{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Issuer:   claims.Issuer,
		Subject:  claims.Subject,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		me.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		me.ExpiresAt = claims.ExpiresAt.Unix()
	}

	httpx.WriteJSON(w, http.StatusOK, habitsdk.MeResponse{User: me})
}
