package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// sourceHint tells the operator where a missing value is expected to come from.
func sourceHint(env Environment, envVar, secret string) string {
	switch env {
	case CI:
		return fmt.Sprintf("environment variable %s is required", envVar)
	case Production:
		return fmt.Sprintf("secret %s is required", secret)
	default:
		return fmt.Sprintf("secret %s or environment variable %s is required", secret, envVar)
	}
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	env := GetEnvironment()

	var errs ValidationErrors
	require := func(field, value, envVar, secret string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: sourceHint(env, envVar, secret)})
		}
	}

	require("ServerPort", cfg.ServerPort, "SERVER_PORT", "server_port")
	require("DBHost", cfg.DBHost, "DB_HOST", "db_host")
	require("DBPort", cfg.DBPort, "DB_PORT", "db_port")
	require("DBName", cfg.DBName, "DB_NAME", "db_name")
	require("DBUser", cfg.DBUser, "DB_USER", "db_user")

	if env == CI {
		require("DBPassword", cfg.DBPassword, "TEST_DB_PASSWORD", "db_password")
		require("JWTSecret", cfg.JWTSecret, "TEST_JWT_SECRET", "jwt_secret")
	} else {
		require("DBPassword", cfg.DBPassword, "DB_PASSWORD", "db_password")
		require("JWTSecret", cfg.JWTSecret, "JWT_SECRET", "jwt_secret")
	}

	if cfg.RedisURL == "" && cfg.RedisHost == "" {
		errs = append(errs, ValidationError{Field: "RedisURL", Message: sourceHint(env, "REDIS_URL", "redis_url")})
	}
	if env == Production {
		require("FDCAPIKey", cfg.FDCAPIKey, "FDC_API_KEY", "fdc_api_key")
	}
	if cfg.RateLimitRequests < 0 {
		errs = append(errs, ValidationError{Field: "RateLimitRequests", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
