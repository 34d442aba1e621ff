package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingResponseWriter_Status(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := NewCapturingResponseWriter(rec, 0)

	assert.Equal(t, http.StatusOK, w.StatusCode)
	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.StatusCode)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, w.HeaderWritten)
}

func TestCapturingResponseWriter_Capture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int64
		writes        []string
		wantBody      string
		wantTruncated bool
	}{
		{
			name:     "capture disabled",
			limit:    0,
			writes:   []string{`{"id":"c1"}`},
			wantBody: "",
		},
		{
			name:     "fits",
			limit:    64,
			writes:   []string{`{"id":`, `"c1"}`},
			wantBody: `{"id":"c1"}`,
		},
		{
			name:          "truncated in one write",
			limit:         4,
			writes:        []string{`{"id":"c1"}`},
			wantBody:      `{"id`,
			wantTruncated: true,
		},
		{
			name:          "truncated across writes",
			limit:         6,
			writes:        []string{`{"id":`, `"c1"}`},
			wantBody:      `{"id":`,
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			w := NewCapturingResponseWriter(rec, tt.limit)

			total := 0
			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				require.NoError(t, err)
				total += n
			}

			assert.Equal(t, tt.wantBody, string(w.Body()))
			assert.Equal(t, tt.wantTruncated, w.Truncated())
			assert.Equal(t, int64(total), w.BytesWritten)
			assert.Equal(t, total, rec.Body.Len())
		})
	}
}

func TestCapturingResponseWriter_Flush(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := NewCapturingResponseWriter(rec, 0)
	w.Flush()
	assert.True(t, rec.Flushed)
}
