package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the smallest HMAC secret we accept. Anything shorter
// than the hash output weakens HS256.
const MinSecretBytes = 32

// HS256Signer implements the Signer interface using HMAC-SHA256.
type HS256Signer struct {
	secret []byte
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	s := &HS256Signer{secret: append([]byte(nil), secret...)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate makes sure the secret is long enough to be worth signing with.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinSecretBytes {
		return ErrWeakSecret
	}
	return nil
}
