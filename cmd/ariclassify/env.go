package main

import (
	"cmp"
	"os"
	"strconv"
	"strings"
)

// getEnvOrDefault returns $key, or fallback when it is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	return cmp.Or(os.Getenv(key), fallback)
}

// getEnvBool reads $key as a boolean. Besides strconv.ParseBool forms it
// accepts yes/no and on/off; anything else yields fallback.
func getEnvBool(key string, fallback bool) bool {
	switch value := strings.ToLower(strings.TrimSpace(os.Getenv(key))); value {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	default:
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		return fallback
	}
}
