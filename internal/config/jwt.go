package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by NewJWTConfig
const (
	EnvJWTSecret          = "JWT_SECRET"
	EnvJWTExpirationHours = "JWT_EXPIRATION_HOURS"
)

// DefaultJWTExpirationHours is used when JWT_EXPIRATION_HOURS is unset
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for API token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	return NewJWTConfigWithSecret(os.Getenv(EnvJWTSecret))
}

// NewJWTConfigWithSecret uses secret instead of JWT_SECRET. The expiration is
// still read from the environment.
func NewJWTConfigWithSecret(secret string) (*JWTConfig, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours := DefaultJWTExpirationHours
	if expirationStr := os.Getenv(EnvJWTExpirationHours); expirationStr != "" {
		hours, err := strconv.Atoi(expirationStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = hours
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
