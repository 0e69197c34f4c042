package cryptox

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost the web client's original accounts were
// hashed with, so existing hashes verify without a rehash.
const DefaultCost = 10

// MaxPasswordBytes is bcrypt's input limit; anything longer is rejected
// rather than silently truncated.
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrInvalidCost      = errors.New("cryptox: bcrypt cost out of range")
)

// HashPassword returns a salted bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if err := ValidateCost(cost); err != nil {
		return "", err
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// Passwords over MaxPasswordBytes never match: bcrypt would only compare
// their first 72 bytes.
func VerifyPassword(password, hash string) error {
	if len(password) > MaxPasswordBytes {
		BurnVerify(password[:MaxPasswordBytes])
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
}

// ValidateCost reports whether cost is usable by bcrypt.
func ValidateCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return ErrInvalidCost
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// BurnVerify runs a bcrypt comparison against a throwaway hash. Login calls
// it when the account does not exist so both failure paths cost the same.
func BurnVerify(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
