package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/ariproxy/internal/observability"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		existingRequestID string
		expectNewID       bool
	}{
		{
			name:              "generates new request ID",
			existingRequestID: "",
			expectNewID:       true,
		},
		{
			name:              "uses existing request ID",
			existingRequestID: "existing-request-id-123",
			expectNewID:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedRequestID string
			handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedRequestID = observability.RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/ari/channels", nil)
			if tt.existingRequestID != "" {
				req.Header.Set(RequestIDHeader, tt.existingRequestID)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			responseRequestID := rec.Header().Get(RequestIDHeader)
			require.NotEmpty(t, responseRequestID)
			assert.Equal(t, responseRequestID, capturedRequestID)

			if tt.expectNewID {
				_, err := uuid.Parse(responseRequestID)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.existingRequestID, responseRequestID)
			}
		})
	}
}

func TestRequestIDWithGenerator(t *testing.T) {
	t.Parallel()

	handler := RequestIDWithGenerator(func() string { return "fixed-id" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fixed-id", observability.RequestIDFromContext(r.Context()))
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsMalformedIncomingID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		kept     bool
	}{
		{name: "uuid", incoming: "0b6c1c2e-9d0f-4a53-8a7e-3f1d2c4b5a69", kept: true},
		{name: "asterisk style", incoming: "1700000000.42", kept: true},
		{name: "contains space", incoming: "req 1"},
		{name: "non ascii", incoming: "req-é"},
		{name: "too long", incoming: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "at limit", incoming: strings.Repeat("a", maxRequestIDLength), kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := RequestIDWithGenerator(func() string { return "generated" })(
				http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
			)

			req := httptest.NewRequest(http.MethodGet, "/ari/channels", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			want := "generated"
			if tt.kept {
				want = tt.incoming
			}
			assert.Equal(t, want, rec.Header().Get(RequestIDHeader))
		})
	}
}
