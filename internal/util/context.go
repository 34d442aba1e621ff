package util

import (
	"context"
	"time"
)

// Context keys.
type ctxKey string

const (
	ctxKeyCommandType ctxKey = "command_type"
	ctxKeyIDSource    ctxKey = "id_source"
	ctxKeyStartTime   ctxKey = "start_time"
)

// ContextWithCommandType adds the command type name of a request to the
// context.
func ContextWithCommandType(ctx context.Context, commandType string) context.Context {
	return context.WithValue(ctx, ctxKeyCommandType, commandType)
}

// CommandTypeFromContext extracts the command type name from context.
func CommandTypeFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyCommandType).(string); ok {
		return v
	}
	return ""
}

// ContextWithIDSource records where the correlation id was read from.
func ContextWithIDSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ctxKeyIDSource, source)
}

// IDSourceFromContext extracts the correlation id source from context.
func IDSourceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIDSource).(string); ok {
		return v
	}
	return ""
}

// ContextWithStartTime adds a start time to the context.
func ContextWithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ctxKeyStartTime, t)
}

// StartTimeFromContext extracts the start time from context.
func StartTimeFromContext(ctx context.Context) time.Time {
	if v, ok := ctx.Value(ctxKeyStartTime).(time.Time); ok {
		return v
	}
	return time.Time{}
}

// ElapsedTime returns the elapsed time since the start time in context.
func ElapsedTime(ctx context.Context) time.Duration {
	startTime := StartTimeFromContext(ctx)
	if startTime.IsZero() {
		return 0
	}
	return time.Since(startTime)
}
