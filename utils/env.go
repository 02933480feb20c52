package utils

import (
	"os"
	"strings"
)

// AppEnv returns the normalized APP_ENV value, "local" when unset.
func AppEnv() string {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env == "" {
		return "local"
	}
	return env
}

// IsLocal reports whether env names a developer machine.
func IsLocal(env string) bool {
	return env == "local" || env == "localhost"
}

// IsProd reports whether env names production.
func IsProd(env string) bool {
	return env == "prod" || env == "production"
}
