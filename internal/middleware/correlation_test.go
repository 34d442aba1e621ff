package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/ariproxy/internal/command"
	"github.com/vyrodovalexey/ariproxy/internal/config"
	"github.com/vyrodovalexey/ariproxy/internal/observability"
	"github.com/vyrodovalexey/ariproxy/internal/util"
)

type capturedRequest struct {
	called        bool
	body          string
	commandType   string
	correlationID string
	idSource      string
}

func newCorrelationHandler(
	t *testing.T,
	cfg config.CorrelationConfig,
	status int,
	response string,
	opts ...CorrelationOption,
) (http.Handler, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.called = true
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.body = string(data)
		captured.commandType = util.CommandTypeFromContext(r.Context())
		captured.correlationID = observability.CorrelationIDFromContext(r.Context())
		captured.idSource = util.IDSourceFromContext(r.Context())

		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	})

	return Correlation(command.Default(), cfg, observability.NopLogger(), opts...)(next), captured
}

func TestCorrelation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantType   string
		wantID     string
		wantSource string
	}{
		{
			name:       "id in path",
			method:     http.MethodPost,
			path:       "/ari/channels/1700000000.1/answer",
			wantType:   "CHANNEL",
			wantID:     "1700000000.1",
			wantSource: "uri",
		},
		{
			name:       "id in body",
			method:     http.MethodPost,
			path:       "/ari/channels/create",
			body:       `{"endpoint":"PJSIP/100","app":"demo","channelId":"new-1"}`,
			wantType:   "CHANNEL_CREATION",
			wantID:     "new-1",
			wantSource: "body",
		},
		{
			name:       "recording name from body",
			method:     http.MethodPost,
			path:       "/ari/bridges/br-1/record",
			body:       `{"name":"rec-1","format":"wav"}`,
			wantType:   "RECORDING_CREATION",
			wantID:     "rec-1",
			wantSource: "body",
		},
		{
			name:     "no id anywhere",
			method:   http.MethodPost,
			path:     "/ari/bridges",
			body:     `{"type":"mixing"}`,
			wantType: "BRIDGE_CREATION",
		},
		{
			name:   "unknown command",
			method: http.MethodGet,
			path:   "/ari/asterisk/info",
		},
		{
			name:   "outside prefix",
			method: http.MethodGet,
			path:   "/health/channels/c1/answer",
		},
		{
			name:   "prefix must end at a segment",
			method: http.MethodGet,
			path:   "/arix/channels/c1/answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, captured := newCorrelationHandler(t, config.DefaultConfig().Correlation, http.StatusOK, `{}`)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.True(t, captured.called)
			assert.Equal(t, tt.body, captured.body, "next handler sees the full body")
			assert.Equal(t, tt.wantType, captured.commandType)
			assert.Equal(t, tt.wantID, captured.correlationID)
			assert.Equal(t, tt.wantSource, captured.idSource)
			assert.Equal(t, tt.wantType, rec.Header().Get(config.DefaultTypeHeader))
			assert.Equal(t, tt.wantID, rec.Header().Get(config.DefaultIDHeader))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestCorrelation_EmptyPrefix(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig().Correlation
	cfg.PathPrefix = ""
	handler, captured := newCorrelationHandler(t, cfg, http.StatusNoContent, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/playbacks/pb-1", nil))

	assert.Equal(t, "PLAYBACK", captured.commandType)
	assert.Equal(t, "pb-1", captured.correlationID)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCorrelation_HeadersDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig().Correlation
	cfg.Header = ""
	cfg.TypeHeader = ""
	handler, captured := newCorrelationHandler(t, cfg, http.StatusOK, `{}`)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ari/channels/c1/hold", nil))

	assert.Equal(t, "c1", captured.correlationID)
	assert.Empty(t, rec.Header().Get(config.DefaultIDHeader))
	assert.Empty(t, rec.Header().Get(config.DefaultTypeHeader))
}

func TestCorrelation_BodyTooLarge(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics("test", reg)

	cfg := config.DefaultConfig().Correlation
	cfg.MaxBodySize = 16
	handler, captured := newCorrelationHandler(t, cfg, http.StatusOK, `{}`, WithCorrelationMetrics(metrics))

	body := `{"channelId":"new-1","endpoint":"PJSIP/100"}`

	tests := []struct {
		name          string
		contentLength int64
	}{
		{name: "declared length", contentLength: int64(len(body))},
		{name: "chunked", contentLength: -1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/ari/channels/create", strings.NewReader(body))
		req.ContentLength = tt.contentLength
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, body, captured.body, tt.name)
		assert.Empty(t, captured.correlationID, tt.name)
		assert.Equal(t, "CHANNEL_CREATION", captured.commandType, tt.name)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.bodyTooLarge))
}

func TestCorrelation_ResponseCapture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		capture    bool
		status     int
		response   string
		wantSource string
		wantLog    bool
	}{
		{
			name:       "created channel id from response",
			path:       "/ari/channels",
			capture:    true,
			status:     http.StatusOK,
			response:   `{"id":"1700000000.7","name":"PJSIP/100-00000001"}`,
			wantSource: "response",
			wantLog:    true,
		},
		{
			name:       "capture disabled",
			path:       "/ari/channels",
			capture:    false,
			status:     http.StatusOK,
			response:   `{"id":"1700000000.7"}`,
			wantSource: "uri",
		},
		{
			name:       "error response",
			path:       "/ari/bridges",
			capture:    true,
			status:     http.StatusBadRequest,
			response:   `{"message":"invalid type"}`,
			wantSource: "uri",
		},
		{
			name:       "response without id",
			path:       "/ari/bridges",
			capture:    true,
			status:     http.StatusOK,
			response:   `[]`,
			wantSource: "uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := prometheus.NewRegistry()
			metrics := NewMetrics("test", reg)
			core, logs := observer.New(zapcore.DebugLevel)

			cfg := config.DefaultConfig().Correlation
			cfg.CaptureResponse = tt.capture

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.response)
			})
			handler := Correlation(command.Default(), cfg, observability.NewFromZap(zap.New(core)),
				WithCorrelationMetrics(metrics))(next)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.response, rec.Body.String(), "response is passed through")
			assert.Empty(t, rec.Header().Get(config.DefaultIDHeader))

			typ := command.Default().Classify(strings.TrimPrefix(tt.path, "/ari")).String()
			if tt.wantSource == "response" {
				assert.Equal(t, 1.0, testutil.ToFloat64(
					metrics.correlationsTotal.WithLabelValues(typ, outcomeResolved, "response")))
			} else {
				assert.Equal(t, 1.0, testutil.ToFloat64(
					metrics.correlationsTotal.WithLabelValues(typ, outcomeUnresolved, tt.wantSource)))
			}

			resolved := logs.FilterMessage("correlation id resolved from response").All()
			if tt.wantLog {
				require.Len(t, resolved, 1)
				assert.Equal(t, "1700000000.7", resolved[0].ContextMap()["correlation_id"])
			} else {
				assert.Empty(t, resolved)
				assert.Len(t, logs.FilterMessage("correlation id unresolved").All(), 1)
			}
		})
	}
}

func TestCorrelation_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics("test", reg)
	handler, _ := newCorrelationHandler(t, config.DefaultConfig().Correlation, http.StatusOK, `{}`,
		WithCorrelationMetrics(metrics))

	requests := []struct {
		path string
		body string
	}{
		{path: "/ari/channels/c1/answer"},
		{path: "/ari/channels/c2/answer"},
		{path: "/ari/channels/create", body: `{"channelId":"c3"}`},
		{path: "/ari/asterisk/info"},
	}
	for _, r := range requests {
		var body io.Reader
		if r.body != "" {
			body = strings.NewReader(r.body)
		}
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, r.path, body))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.correlationsTotal.WithLabelValues("CHANNEL", outcomeResolved, "uri")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.correlationsTotal.WithLabelValues("CHANNEL_CREATION", outcomeResolved, "body")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.correlationsTotal.WithLabelValues("UNKNOWN", outcomeUnclassified, "")))

	count, err := testutil.GatherAndCount(reg, "test_middleware_inspected_body_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCorrelation_Span(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	handler, _ := newCorrelationHandler(t, config.DefaultConfig().Correlation, http.StatusOK, `{}`,
		WithTracerProvider(tp))

	handler.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/ari/channels/c1/snoop/snoop-1", nil))
	handler.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/ari/channels/create", strings.NewReader(`{}`)))
	handler.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/ari/asterisk/info", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2, "unknown commands are not traced")

	attrs := func(s tracetest.SpanStub) map[string]interface{} {
		m := make(map[string]interface{})
		for _, a := range s.Attributes {
			m[string(a.Key)] = a.Value.AsInterface()
		}
		return m
	}

	resolved := attrs(spans[0])
	assert.Equal(t, "ari.correlate", spans[0].Name)
	assert.Equal(t, "SNOOPING_CREATION", resolved["ari.command_type"])
	assert.Equal(t, "snoop-1", resolved["ari.correlation_id"])
	assert.Equal(t, "uri", resolved["ari.id_source"])
	assert.Equal(t, int64(http.StatusOK), resolved["http.response.status_code"])

	unresolved := attrs(spans[1])
	assert.Equal(t, "CHANNEL_CREATION", unresolved["ari.command_type"])
	assert.NotContains(t, unresolved, "ari.correlation_id")
	require.NotEmpty(t, spans[1].Events)
	assert.Equal(t, "correlation id unresolved", spans[1].Events[0].Name)
}
