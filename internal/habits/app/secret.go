package app

import (
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/habits/pkg/cryptox"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required outside dev")

// resolveSecret returns the configured HMAC secret. In dev, and only there,
// a missing secret is replaced with a random 256-bit one.
func resolveSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	if !cfg.IsDev() {
		return nil, ErrMissingSecret
	}

	generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	return []byte(generated), nil
}
