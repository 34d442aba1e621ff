package util

import (
	"bytes"
	"net/http"
)

// CapturingResponseWriter wraps http.ResponseWriter to track the status
// code and, when a capture limit is set, keep a copy of the first bytes
// of the response body.
type CapturingResponseWriter struct {
	http.ResponseWriter
	StatusCode    int
	HeaderWritten bool
	BytesWritten  int64

	limit     int64
	body      bytes.Buffer
	truncated bool
}

// NewCapturingResponseWriter creates a CapturingResponseWriter with a
// default status of 200 OK. A captureLimit of zero disables body capture.
func NewCapturingResponseWriter(w http.ResponseWriter, captureLimit int64) *CapturingResponseWriter {
	return &CapturingResponseWriter{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
		limit:          captureLimit,
	}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *CapturingResponseWriter) WriteHeader(code int) {
	if w.HeaderWritten {
		return
	}
	w.StatusCode = code
	w.HeaderWritten = true
	w.ResponseWriter.WriteHeader(code)
}

// Write writes data to the underlying ResponseWriter and copies it into
// the capture buffer while there is room.
func (w *CapturingResponseWriter) Write(b []byte) (int, error) {
	if !w.HeaderWritten {
		w.HeaderWritten = true
	}

	if room := w.limit - int64(w.body.Len()); room > 0 {
		if int64(len(b)) > room {
			w.body.Write(b[:room])
			w.truncated = true
		} else {
			w.body.Write(b)
		}
	} else if w.limit > 0 && len(b) > 0 {
		w.truncated = true
	}

	n, err := w.ResponseWriter.Write(b)
	w.BytesWritten += int64(n)
	return n, err
}

// Body returns the captured response body.
func (w *CapturingResponseWriter) Body() []byte {
	return w.body.Bytes()
}

// Truncated reports whether the response was longer than the capture limit.
func (w *CapturingResponseWriter) Truncated() bool {
	return w.truncated
}

// Flush implements http.Flusher interface for streaming support.
func (w *CapturingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compile-time interface assertion.
var _ http.Flusher = (*CapturingResponseWriter)(nil)
