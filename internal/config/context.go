package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// configCtxKey is used to store the resolved config in command contexts.
type configCtxKey struct{}

// WithConfig stores the resolved configuration in a context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configCtxKey{}, cfg)
}

// FromContext retrieves the configuration from a command context, or nil
// when none was stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configCtxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// WithLogger stores the logger in a context for GetLogger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GenerateKey returns a URL-safe random secret, used for the dashboard
// access key and the session signing secret when none is configured.
func GenerateKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
