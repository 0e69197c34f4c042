package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testIssuer = "habits-test"
	testSecret = "0123456789abcdef0123456789abcdef"
)

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAuthService(t *testing.T, s store.Store) *AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)

	return &AuthService{
		Store:      s,
		Signer:     signer,
		Issuer:     testIssuer,
		TTL:        time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func newUser(t *testing.T, s store.Store, name string) domain.UserID {
	t.Helper()

	u, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u.ID
}

// fixedClock pins today to 2026-10-19 in UTC.
func fixedClock() Clock {
	return Clock{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) },
	}
}
