package observability

import "go.uber.org/zap"

// Field represents a log field.
type Field = zap.Field

// Field constructors for convenience.
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Error    = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
)

// Keys shared by every component that logs a correlated command.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyCommandType   = "command_type"
	KeyIDSource      = "id_source"
)

// RequestID returns the request id field.
func RequestID(id string) Field { return zap.String(KeyRequestID, id) }

// CorrelationID returns the field for the resource id a command is
// correlated by.
func CorrelationID(id string) Field { return zap.String(KeyCorrelationID, id) }

// CommandType returns the command type field, e.g. "CHANNEL".
func CommandType(name string) Field { return zap.String(KeyCommandType, name) }

// IDSource returns the field naming where the correlation id was read.
func IDSource(source string) Field { return zap.String(KeyIDSource, source) }
