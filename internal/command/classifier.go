package command

import (
	"github.com/vyrodovalexey/ariproxy/internal/observability"
)

// Classifier maps request paths to command types and extracts resource
// ids. It is immutable after construction and safe for concurrent use.
type Classifier struct {
	entries  []Entry
	matchers []*TemplateMatcher
	logger   observability.Logger
	metrics  *Metrics
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for table construction and extraction
// failures.
func WithLogger(logger observability.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Classifier) {
		c.metrics = metrics
	}
}

// New compiles entries into a Classifier. It fails when a template is
// malformed or when two templates can match the same path without an
// unambiguous precedence.
func New(entries []Entry, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		entries:  make([]Entry, len(entries)),
		matchers: make([]*TemplateMatcher, 0, len(entries)),
		logger:   observability.NopLogger(),
	}
	copy(c.entries, entries)

	for _, opt := range opts {
		opt(c)
	}

	for _, e := range c.entries {
		m, err := NewTemplateMatcher(e.Template)
		if err != nil {
			return nil, &TableError{Template: e.Template, Message: err.Error()}
		}
		c.matchers = append(c.matchers, m)
	}

	if err := c.checkPrecedence(); err != nil {
		return nil, err
	}

	c.logger.Info("command classifier initialized",
		observability.Int("templates", len(c.entries)),
	)

	return c, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(entries []Entry, opts ...Option) *Classifier {
	c, err := New(entries, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// checkPrecedence rejects tables where first-match order would make the
// result depend on authoring accidents. An earlier template may overlap
// a later one only if it is strictly narrower or maps to the same type.
func (c *Classifier) checkPrecedence() error {
	for i := range c.matchers {
		for j := i + 1; j < len(c.matchers); j++ {
			earlier, later := c.matchers[i], c.matchers[j]
			if earlier.Template() == later.Template() {
				return &TableError{Template: earlier.Template(), Message: "duplicate template"}
			}
			if !earlier.overlaps(later) {
				continue
			}
			if c.entries[i].Type == c.entries[j].Type || earlier.narrower(later) {
				continue
			}
			msg := "ambiguous overlap with different types"
			if later.narrower(earlier) {
				msg = "later template is shadowed by an earlier, broader one"
			}
			return &TableError{Template: earlier.Template(), Other: later.Template(), Message: msg}
		}
	}
	return nil
}

// Entries returns a copy of the classifier's table.
func (c *Classifier) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Classify returns the type of the first template matching path, or
// Unknown when none does.
func (c *Classifier) Classify(path string) Type {
	t := Unknown
	for i, m := range c.matchers {
		if m.MatchString(path) {
			t = c.entries[i].Type
			break
		}
	}
	c.metrics.recordClassification(t)
	return t
}

// ExtractFromURI reads the resource id of t from path.
func (c *Classifier) ExtractFromURI(t Type, path string) Result {
	return c.observe(t, extractFromURI(t, path))
}

// ExtractFromBody reads the resource id of t from a JSON body.
func (c *Classifier) ExtractFromBody(t Type, body string) Result {
	return c.observe(t, extractFromBody(t, body))
}

// ExtractFromResponse reads the id of a resource created by t from a JSON
// response body.
func (c *Classifier) ExtractFromResponse(t Type, body string) Result {
	return c.observe(t, extractFromResponse(t, body))
}

// Resolve tries the path first and falls back to the body. If both fail,
// the path failure is returned.
func (c *Classifier) Resolve(t Type, path, body string) Result {
	return c.observe(t, resolve(t, path, body))
}

// Correlate classifies path and resolves its resource id using the
// request body.
func (c *Classifier) Correlate(path, body string) (Type, Result) {
	t := c.Classify(path)
	return t, c.Resolve(t, path, body)
}

func (c *Classifier) observe(t Type, r Result) Result {
	c.metrics.recordExtraction(t, r)
	if r.IsFailure() {
		c.logger.Debug("resource id extraction failed",
			observability.CommandType(t.String()),
			observability.String("source", string(r.Source())),
			observability.String("reason", Reason(r.Err())),
			observability.Error(r.Err()),
		)
	}
	return r
}

// defaultClassifier is built from the ARI table at package initialization.
var defaultClassifier = MustNew(defaultEntries)

// Default returns the classifier for the built-in ARI table.
func Default() *Classifier {
	return defaultClassifier
}

// Classify classifies path with the built-in ARI table.
func Classify(path string) Type {
	return defaultClassifier.Classify(path)
}

// ExtractFromURI reads the resource id of t from path.
func ExtractFromURI(t Type, path string) Result {
	return extractFromURI(t, path)
}

// ExtractFromBody reads the resource id of t from a JSON body.
func ExtractFromBody(t Type, body string) Result {
	return extractFromBody(t, body)
}

// ExtractFromResponse reads the id of a resource created by t from a JSON
// response body.
func ExtractFromResponse(t Type, body string) Result {
	return extractFromResponse(t, body)
}

// Combine applies Resolve's precedence to results that were already
// extracted: a uri success wins, then a body success, and the uri failure
// is kept when both fail. It records no metrics.
func Combine(fromURI, fromBody Result) Result {
	return combine(fromURI, fromBody)
}

// Resolve tries the path first and falls back to the body.
func Resolve(t Type, path, body string) Result {
	return resolve(t, path, body)
}
