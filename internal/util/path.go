package util

import "strings"

// StripPathPrefix removes prefix from path at a segment boundary. It
// reports false when path is outside the prefix. The empty prefix
// matches every path.
func StripPathPrefix(path, prefix string) (string, bool) {
	if prefix == "" {
		return path, true
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return "", false
	}
	return rest, true
}
