package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value onto a known environment. Anything
// unrecognised is development.
func ParseEnvironment(value string) Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(value))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

// GetEnvironment reads CI=true first, then ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// GinMode is the gin run mode matching e.
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return "release"
	case Test, CI:
		return "test"
	default:
		return "debug"
	}
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
