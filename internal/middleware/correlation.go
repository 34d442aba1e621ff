package middleware

import (
	"bytes"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/ariproxy/internal/command"
	"github.com/vyrodovalexey/ariproxy/internal/config"
	"github.com/vyrodovalexey/ariproxy/internal/observability"
	"github.com/vyrodovalexey/ariproxy/internal/util"
)

// Classifier is the part of *command.Classifier the middleware needs.
type Classifier interface {
	Classify(path string) command.Type
	Resolve(t command.Type, path, body string) command.Result
	ExtractFromResponse(t command.Type, body string) command.Result
}

// CorrelationOption configures the Correlation middleware.
type CorrelationOption func(*correlation)

// WithCorrelationMetrics enables Prometheus metrics.
func WithCorrelationMetrics(metrics *Metrics) CorrelationOption {
	return func(c *correlation) {
		c.metrics = metrics
	}
}

// WithTracerProvider sets the tracer provider. The global provider is
// used by default.
func WithTracerProvider(tp trace.TracerProvider) CorrelationOption {
	return func(c *correlation) {
		c.tracerProvider = tp
	}
}

type correlation struct {
	classifier     Classifier
	cfg            config.CorrelationConfig
	logger         observability.Logger
	metrics        *Metrics
	tracerProvider trace.TracerProvider
}

// Correlation returns a middleware that classifies each request under
// cfg.PathPrefix and resolves its correlation id from the path or the
// buffered request body. The command type and id are stored in the
// request context and echoed in the configured response headers.
// Requests outside the prefix pass through untouched.
func Correlation(
	classifier Classifier,
	cfg config.CorrelationConfig,
	logger observability.Logger,
	opts ...CorrelationOption,
) func(http.Handler) http.Handler {
	c := &correlation{
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
	}
	if c.logger == nil {
		c.logger = observability.NopLogger()
	}
	if c.cfg.MaxBodySize <= 0 {
		c.cfg.MaxBodySize = config.DefaultMaxBodySize
	}
	for _, opt := range opts {
		opt(c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.serve(next, w, r)
		})
	}
}

func (c *correlation) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	path, ok := util.StripPathPrefix(r.URL.Path, c.cfg.PathPrefix)
	if !ok {
		next.ServeHTTP(w, r)
		return
	}

	t := c.classifier.Classify(path)
	if t == command.Unknown {
		c.metrics.recordCorrelation(t.String(), outcomeUnclassified, "")
		next.ServeHTTP(w, r)
		return
	}

	tp := c.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	ctx, span := tp.Tracer(tracerName).Start(r.Context(), "ari.correlate",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("ari.command_type", t.String()),
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	body := c.readBody(r)
	res := c.classifier.Resolve(t, path, body)

	ctx = util.ContextWithCommandType(ctx, t.String())
	if id, ok := res.ID(); ok {
		ctx = observability.ContextWithCorrelationID(ctx, id)
		ctx = util.ContextWithIDSource(ctx, string(res.Source()))
		span.SetAttributes(
			attribute.String("ari.correlation_id", id),
			attribute.String("ari.id_source", string(res.Source())),
		)
		if c.cfg.Header != "" {
			w.Header().Set(c.cfg.Header, id)
		}
	} else if err := res.Err(); err != nil {
		span.AddEvent("correlation id unresolved", trace.WithAttributes(
			attribute.String("ari.reason", command.Reason(err)),
		))
	}
	if c.cfg.TypeHeader != "" {
		w.Header().Set(c.cfg.TypeHeader, t.String())
	}
	r = r.WithContext(ctx)

	var captureLimit int64
	if c.cfg.CaptureResponse && t.IsResourceCreation() && !res.IsSuccess() {
		captureLimit = c.cfg.MaxBodySize.Bytes()
	}
	cw := util.NewCapturingResponseWriter(w, captureLimit)

	next.ServeHTTP(cw, r)

	span.SetAttributes(attribute.Int("http.response.status_code", cw.StatusCode))

	if res.IsSuccess() {
		c.metrics.recordCorrelation(t.String(), outcomeResolved, string(res.Source()))
		return
	}
	if captureLimit > 0 && c.fromResponse(r, span, t, cw) {
		return
	}
	c.metrics.recordCorrelation(t.String(), outcomeUnresolved, string(res.Source()))
	//nolint:contextcheck // request context carries the request id
	c.logger.WithContext(r.Context()).Debug("correlation id unresolved",
		observability.CommandType(t.String()),
		observability.String("path", path),
		observability.String("reason", command.Reason(res.Err())),
	)
}

// fromResponse reads the id of a created resource from a successful
// response body. The id cannot reach the response headers any more, so
// it is only logged, traced and counted.
func (c *correlation) fromResponse(
	r *http.Request,
	span trace.Span,
	t command.Type,
	cw *util.CapturingResponseWriter,
) bool {
	if cw.StatusCode < 200 || cw.StatusCode > 299 || cw.Truncated() {
		return false
	}

	res := c.classifier.ExtractFromResponse(t, string(cw.Body()))
	id, ok := res.ID()
	if !ok {
		return false
	}

	span.SetAttributes(
		attribute.String("ari.correlation_id", id),
		attribute.String("ari.id_source", string(res.Source())),
	)
	c.metrics.recordCorrelation(t.String(), outcomeResolved, string(res.Source()))
	//nolint:contextcheck // request context carries the request id
	c.logger.WithContext(r.Context()).Debug("correlation id resolved from response",
		observability.CommandType(t.String()),
		observability.CorrelationID(id),
	)
	return true
}

// readBody buffers up to MaxBodySize bytes of the request body and
// restores r.Body so the next handler sees the full, unread body. Bodies
// over the limit are not inspected.
func (c *correlation) readBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	limit := c.cfg.MaxBodySize.Bytes()
	if r.ContentLength > limit {
		c.bodyTooLarge(r, limit)
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	original := r.Body
	if err != nil {
		r.Body = readCloser{io.MultiReader(bytes.NewReader(buf), original), original}
		c.logger.Warn("failed to read request body",
			observability.String("path", r.URL.Path),
			observability.Error(err),
		)
		return ""
	}

	if int64(len(buf)) > limit {
		r.Body = readCloser{io.MultiReader(bytes.NewReader(buf), original), original}
		c.bodyTooLarge(r, limit)
		return ""
	}

	r.Body = readCloser{bytes.NewReader(buf), original}
	c.metrics.recordBody(len(buf))
	return string(buf)
}

func (c *correlation) bodyTooLarge(r *http.Request, limit int64) {
	c.metrics.recordBodyTooLarge()
	c.logger.Debug("request body not inspected",
		observability.String("path", r.URL.Path),
		observability.Error(util.NewBodyTooLargeError(limit)),
	)
}

// readCloser replays a buffered body and closes the original one.
type readCloser struct {
	io.Reader
	io.Closer
}
