package command

import (
	"errors"
	"fmt"
)

// Extraction failure causes. Callers match them with errors.Is.
var (
	ErrNoIDInURI       = errors.New("no resource id present in uri")
	ErrIndexOutOfRange = errors.New("resource id position out of range")
	ErrMalformedBody   = errors.New("body is not valid json")
	ErrPathNotFound    = errors.New("resource id path not found in body")
	ErrBlankValue      = errors.New("resource id is blank")
)

// Source names where an identifier is read from.
type Source string

// Extraction sources.
const (
	SourceURI      Source = "uri"
	SourceBody     Source = "body"
	SourceResponse Source = "response"
)

// ExtractionError describes why a resource id could not be extracted.
type ExtractionError struct {
	Source   Source
	Type     Type
	Strategy Strategy
	// Path is the request path for uri extractions. Bodies are not retained.
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Source == SourceURI {
		return fmt.Sprintf("extract %s id from uri %q at %s: %v", e.Type, e.Path, e.Strategy, e.Cause)
	}
	return fmt.Sprintf("extract %s id from %s at %s: %v", e.Type, e.Source, e.Strategy, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ExtractionError) Is(target error) bool {
	_, ok := target.(*ExtractionError)
	return ok || errors.Is(e.Cause, target)
}

func newURIError(t Type, path string, cause error) *ExtractionError {
	return &ExtractionError{Source: SourceURI, Type: t, Strategy: t.URIStrategy(), Path: path, Cause: cause}
}

func newJSONError(t Type, source Source, strategy Strategy, cause error) *ExtractionError {
	return &ExtractionError{Source: source, Type: t, Strategy: strategy, Cause: cause}
}

// Reason returns a short, stable label for an extraction error, suitable
// for metrics and logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoIDInURI):
		return "no_id_in_uri"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrMalformedBody):
		return "malformed_body"
	case errors.Is(err, ErrPathNotFound):
		return "path_not_found"
	case errors.Is(err, ErrBlankValue):
		return "blank_value"
	default:
		return "other"
	}
}

// TableError reports a pattern table that cannot be classified
// deterministically.
type TableError struct {
	Template string
	Other    string
	Message  string
}

// Error implements the error interface.
func (e *TableError) Error() string {
	if e.Other == "" {
		return fmt.Sprintf("pattern table: %s: %s", e.Template, e.Message)
	}
	return fmt.Sprintf("pattern table: %s and %s: %s", e.Template, e.Other, e.Message)
}
