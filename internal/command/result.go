package command

import "fmt"

// Outcome is the state of an extraction Result.
type Outcome int

const (
	// OutcomeNotApplicable means the type has no strategy for the source.
	// The source should not be retried for this type.
	OutcomeNotApplicable Outcome = iota
	// OutcomeFailure means the strategy ran and produced no id.
	OutcomeFailure
	// OutcomeSuccess means a non-empty id was extracted.
	OutcomeSuccess
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeFailure:
		return "failure"
	case OutcomeSuccess:
		return "success"
	default:
		return "not_applicable"
	}
}

// Result is the outcome of a resource id extraction. The zero value is
// a NotApplicable result with no source.
type Result struct {
	outcome Outcome
	source  Source
	id      string
	err     error
}

func notApplicable(source Source) Result {
	return Result{outcome: OutcomeNotApplicable, source: source}
}

func failure(err *ExtractionError) Result {
	return Result{outcome: OutcomeFailure, source: err.Source, err: err}
}

func success(source Source, id string) Result {
	return Result{outcome: OutcomeSuccess, source: source, id: id}
}

// Outcome returns the result state.
func (r Result) Outcome() Outcome {
	return r.outcome
}

// Source returns where the extraction was attempted.
func (r Result) Source() Source {
	return r.source
}

// ID returns the extracted id and whether the extraction succeeded.
func (r Result) ID() (string, bool) {
	return r.id, r.outcome == OutcomeSuccess
}

// Err returns the failure cause, or nil unless the outcome is a failure.
func (r Result) Err() error {
	return r.err
}

// IsSuccess reports whether an id was extracted.
func (r Result) IsSuccess() bool {
	return r.outcome == OutcomeSuccess
}

// IsFailure reports whether the extraction was attempted and failed.
func (r Result) IsFailure() bool {
	return r.outcome == OutcomeFailure
}

// IsNotApplicable reports whether no extraction was attempted.
func (r Result) IsNotApplicable() bool {
	return r.outcome == OutcomeNotApplicable
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r.outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("success(%s)", r.id)
	case OutcomeFailure:
		return fmt.Sprintf("failure(%v)", r.err)
	default:
		return "not_applicable"
	}
}
