package main

import (
	"github.com/vyrodovalexey/ariproxy/internal/command"
)

// record is one JSON line of classifier output.
type record struct {
	Path     string        `json:"path"`
	Type     command.Type  `json:"type"`
	Creation bool          `json:"creation"`
	URI      resultRecord  `json:"uri"`
	Body     *resultRecord `json:"body,omitempty"`
	Resolved resultRecord  `json:"resolved"`
}

type resultRecord struct {
	Outcome string `json:"outcome"`
	Source  string `json:"source,omitempty"`
	ID      string `json:"id,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newResultRecord(r command.Result) resultRecord {
	rec := resultRecord{
		Outcome: r.Outcome().String(),
		Source:  string(r.Source()),
	}
	if id, ok := r.ID(); ok {
		rec.ID = id
	}
	if err := r.Err(); err != nil {
		rec.Reason = command.Reason(err)
		rec.Error = err.Error()
	}
	return rec
}

// classify builds the output record for one path. A nil body skips body
// extraction; resolution then sees an empty body. Each extraction runs
// once, so classifier metrics count one per source.
func classify(c *command.Classifier, path string, body *string) record {
	t := c.Classify(path)
	fromURI := c.ExtractFromURI(t, path)
	rec := record{
		Path:     path,
		Type:     t,
		Creation: t.IsResourceCreation(),
		URI:      newResultRecord(fromURI),
	}

	var fromBody command.Result
	switch {
	case body != nil:
		fromBody = c.ExtractFromBody(t, *body)
		b := newResultRecord(fromBody)
		rec.Body = &b
	case !fromURI.IsSuccess():
		fromBody = command.ExtractFromBody(t, "")
	}
	rec.Resolved = newResultRecord(command.Combine(fromURI, fromBody))
	return rec
}
