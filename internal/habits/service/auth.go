package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/pkg/cryptox"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/aussiebroadwan/habits/pkg/slogx"
)

type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	TTL        time.Duration
	BcryptCost int
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Token string
	User  domain.User
}

// Register creates an account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return AuthResult{}, invalid("username, email and password required")
	}
	if len(password) > cryptox.MaxPasswordBytes {
		return AuthResult{}, invalid("password must be at most 72 bytes")
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = cryptox.DefaultCost
	}
	hash, err := cryptox.HashPassword(password, cost)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrUserExists
		}
		return AuthResult{}, err
	}

	token, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.Int64("user_id", int64(user.ID)))
	return AuthResult{Token: token, User: user}, nil
}

// Login checks the password and signs a fresh token. Unknown emails and wrong
// passwords both come back as ErrInvalidCredentials after the same bcrypt work.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, invalid("email & password required")
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnVerify(password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Info("login failed", slog.Int64("user_id", int64(user.ID)))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	token, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) issue(u domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}
	claims := jwtx.NewUserClaims(int64(u.ID), u.Username, u.Email, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
