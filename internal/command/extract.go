package command

import (
	"strings"

	"github.com/tidwall/gjson"
)

// extractFromURI reads the resource id of t from a request path.
func extractFromURI(t Type, path string) Result {
	strategy := t.URIStrategy()
	if strategy.Kind != StrategyPathSegment {
		return notApplicable(SourceURI)
	}

	if _, ok := idlessCollections[path]; ok {
		return failure(newURIError(t, path, ErrNoIDInURI))
	}

	segments := splitPath(path)
	if strategy.Index < 0 || strategy.Index >= len(segments) {
		return failure(newURIError(t, path, ErrIndexOutOfRange))
	}

	id := segments[strategy.Index]
	if id == "" {
		return failure(newURIError(t, path, ErrNoIDInURI))
	}
	return success(SourceURI, id)
}

// splitPath splits on "/" and drops trailing empty segments, so
// "/channels/" and "/channels" yield the same segments.
func splitPath(path string) []string {
	segments := strings.Split(path, "/")
	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

// extractFromBody reads the resource id of t from a JSON request body.
func extractFromBody(t Type, body string) Result {
	return extractJSON(t, SourceBody, t.BodyStrategy(), body)
}

// extractFromResponse reads the id of a resource created by t from a
// JSON response body.
func extractFromResponse(t Type, body string) Result {
	return extractJSON(t, SourceResponse, t.ResponseStrategy(), body)
}

func extractJSON(t Type, source Source, strategy Strategy, body string) Result {
	if strategy.Kind != StrategyJSONPointer {
		return notApplicable(source)
	}

	if !gjson.Valid(body) {
		return failure(newJSONError(t, source, strategy, ErrMalformedBody))
	}

	value := gjson.Get(body, strategy.path)
	if !value.Exists() {
		return failure(newJSONError(t, source, strategy, ErrPathNotFound))
	}

	// null and containers have no textual value.
	if value.Type == gjson.Null || value.IsObject() || value.IsArray() {
		return failure(newJSONError(t, source, strategy, ErrBlankValue))
	}

	id := value.String()
	if strings.TrimSpace(id) == "" {
		return failure(newJSONError(t, source, strategy, ErrBlankValue))
	}
	return success(source, id)
}

// resolve applies the uri strategy and falls back to the body strategy.
// When both fail the uri failure is returned.
func resolve(t Type, path, body string) Result {
	fromURI := extractFromURI(t, path)
	if fromURI.IsSuccess() {
		return fromURI
	}

	return combine(fromURI, extractFromBody(t, body))
}

// combine picks the resolved result from a uri and a body result.
func combine(fromURI, fromBody Result) Result {
	if fromURI.IsSuccess() {
		return fromURI
	}
	if fromBody.IsSuccess() || !fromURI.IsFailure() {
		return fromBody
	}
	return fromURI
}

// gjsonSpecial lists characters with meaning in gjson paths.
const gjsonSpecial = `\.*?|#@!=<>%`

// pointerToPath converts an RFC 6901 pointer to a gjson path. Array
// indexes need no translation because gjson addresses them as keys.
func pointerToPath(pointer string) string {
	if pointer == "" {
		return "@this"
	}

	tokens := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")

		var b strings.Builder
		for _, r := range tok {
			if strings.ContainsRune(gjsonSpecial, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		tokens[i] = b.String()
	}
	return strings.Join(tokens, ".")
}
