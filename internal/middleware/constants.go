package middleware

// HTTP header constants.
const (
	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderXRequestID is the X-Request-ID header name.
	HeaderXRequestID = "X-Request-ID"
)

// ContentTypeJSON is the JSON content type.
const ContentTypeJSON = "application/json"

// Correlation outcomes used as metric labels.
const (
	outcomeResolved     = "resolved"
	outcomeUnresolved   = "unresolved"
	outcomeUnclassified = "unclassified"
)

// tracerName identifies spans created by this package.
const tracerName = "ariproxy/middleware"
