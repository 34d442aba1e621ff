package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_applicable", OutcomeNotApplicable.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "success", OutcomeSuccess.String())
}

func TestResult_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Result
	assert.True(t, r.IsNotApplicable())
	assert.False(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.NoError(t, r.Err())
	assert.Equal(t, Source(""), r.Source())

	id, ok := r.ID()
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestResult_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{
			name:     "success",
			result:   success(SourceURI, "abc"),
			expected: "success(abc)",
		},
		{
			name:     "failure",
			result:   failure(newJSONError(Channel, SourceBody, Channel.BodyStrategy(), ErrPathNotFound)),
			expected: "failure(extract CHANNEL id from body at /channelId: resource id path not found in body)",
		},
		{
			name:     "not applicable",
			result:   notApplicable(SourceBody),
			expected: "not_applicable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.result.String())
		})
	}
}

func TestResult_ExactlyOneState(t *testing.T) {
	t.Parallel()

	results := []Result{
		ExtractFromURI(Channel, "/channels/c1/mute"),
		ExtractFromURI(Channel, "/channels"),
		ExtractFromURI(Recording, "/recordings/live/r1"),
		ExtractFromBody(Channel, `{"channelId":"c1"}`),
		ExtractFromBody(Channel, `{}`),
		ExtractFromBody(Unknown, `{}`),
	}

	for _, r := range results {
		states := 0
		for _, set := range []bool{r.IsSuccess(), r.IsFailure(), r.IsNotApplicable()} {
			if set {
				states++
			}
		}
		assert.Equal(t, 1, states, "result %s", r)
		assert.Equal(t, r.IsFailure(), r.Err() != nil)
	}
}
