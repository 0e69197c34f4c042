package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "habits-api"

var exampleSecret = []byte(strings.Repeat("s", jwtx.MinSecretBytes))

func TestHS256SignAndVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC().Truncate(time.Second)
	claims := jwtx.NewUserClaims(42, "bob", "bob@example.com", exampleIssuer, jwtx.DefaultTokenTTL, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// What comes out of the verifier must be exactly what went in.
	got, err := jwtx.NewCommonHS256(exampleSecret, exampleIssuer).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims, got)
	require.Equal(t, time.UTC, got.ExpiresAt.Location())
	require.Equal(t, time.UTC, got.IssuedAt.Location())
}

func TestHS256RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256VerifyFailures(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer)
	now := time.Now().UTC()

	sign := func(t *testing.T, c jwtx.Claims) string {
		t.Helper()
		tok, err := signer.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte(strings.Repeat("x", jwtx.MinSecretBytes)))
		require.NoError(t, err)
		tok, err := other.Sign(jwtx.NewUserClaims(1, "a", "a@example.com", exampleIssuer, time.Hour, now))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		tok := sign(t, jwtx.NewUserClaims(1, "a", "a@example.com", exampleIssuer, time.Hour, now.Add(-2*time.Hour)))
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		tok := sign(t, jwtx.NewUserClaims(1, "a", "a@example.com", "elsewhere", time.Hour, now))
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		c := jwtx.NewUserClaims(1, "a", "a@example.com", exampleIssuer, time.Hour, now)
		c.Subject = "2"
		_, err := verifier.Verify(sign(t, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		c := jwtx.NewUserClaims(1, "a", "a@example.com", exampleIssuer, time.Hour, now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, c).SignedString(exampleSecret)
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}
