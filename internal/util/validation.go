package util

import (
	"regexp"
	"strings"
)

// headerNameRegex validates HTTP header names according to RFC 7230.
var headerNameRegex = regexp.MustCompile(`^[!#$%&'*+\-.^_` + "`" + `|~0-9A-Za-z]+$`)

// ValidateHeaderName validates an HTTP header name.
func ValidateHeaderName(name string) error {
	if name == "" {
		return invalidf("header name cannot be empty")
	}

	if !headerNameRegex.MatchString(name) {
		return invalidf("invalid header name: %s", name)
	}

	return nil
}

// ValidateNonEmpty validates that a string is not empty.
func ValidateNonEmpty(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return invalidf("%s cannot be empty", name)
	}
	return nil
}

// ValidatePathPrefix validates a URL path prefix. The empty prefix is
// allowed; any other prefix must start with "/" and not end with one.
func ValidatePathPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !strings.HasPrefix(prefix, "/") {
		return invalidf("path prefix must start with /, got: %s", prefix)
	}
	if strings.HasSuffix(prefix, "/") {
		return invalidf("path prefix must not end with /, got: %s", prefix)
	}
	if strings.ContainsAny(prefix, "?#") {
		return invalidf("path prefix must not contain a query or fragment, got: %s", prefix)
	}
	return nil
}

// ValidatePositiveSize validates a byte size limit.
func ValidatePositiveSize(size int64, name string) error {
	if size <= 0 {
		return invalidf("%s must be positive, got: %d", name, size)
	}
	return nil
}
