package jwtx

import (
	"strconv"
	"time"

	"github.com/aussiebroadwan/habits/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login stays valid. There are no refresh
// tokens, users simply log in again after a week.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the bearer token claims. The custom fields are what the web
// client reads back from /api/auth/me, so keep the json names stable.
type Claims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserClaims builds claims for a freshly authenticated user.
func NewUserClaims(
	userID int64,
	username, email string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateSubject makes sure the numeric id and the sub claim agree. A token
// carrying one without the other was not minted by NewUserClaims.
func (c *Claims) ValidateSubject() error {
	if c.UserID <= 0 || c.Subject != strconv.FormatInt(c.UserID, 10) {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
