// Package observability provides structured logging for the ARI proxy.
//
// The Logger interface wraps zap:
//
//	logger, err := observability.NewLogger(observability.LogConfig{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("command correlated",
//	    observability.CommandType("CHANNEL"),
//	    observability.CorrelationID("abc123"),
//	)
//
// Request-scoped values stored with ContextWithRequestID and
// ContextWithCorrelationID are added to log entries by WithContext.
package observability
