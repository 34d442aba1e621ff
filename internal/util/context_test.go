package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextWithCommandType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		commandType string
	}{
		{name: "channel", commandType: "CHANNEL"},
		{name: "creation", commandType: "BRIDGE_CREATION"},
		{name: "empty", commandType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := ContextWithCommandType(context.Background(), tt.commandType)
			assert.Equal(t, tt.commandType, CommandTypeFromContext(ctx))
		})
	}
}

func TestContextValues_NotSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, CommandTypeFromContext(ctx))
	assert.Empty(t, IDSourceFromContext(ctx))
	assert.True(t, StartTimeFromContext(ctx).IsZero())
	assert.Zero(t, ElapsedTime(ctx))
}

func TestContextWithIDSource(t *testing.T) {
	t.Parallel()

	ctx := ContextWithIDSource(context.Background(), "body")
	assert.Equal(t, "body", IDSourceFromContext(ctx))
	assert.Empty(t, CommandTypeFromContext(ctx))
}

func TestElapsedTime(t *testing.T) {
	t.Parallel()

	start := time.Now().Add(-50 * time.Millisecond)
	ctx := ContextWithStartTime(context.Background(), start)

	assert.Equal(t, start, StartTimeFromContext(ctx))
	assert.GreaterOrEqual(t, ElapsedTime(ctx), 50*time.Millisecond)
}
