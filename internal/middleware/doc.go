// Package middleware provides net/http middleware that attaches ARI
// command correlation to requests.
//
// # Middleware Components
//
//   - Recovery: panic recovery with a JSON 500 response
//   - RequestID: unique request identifier injection
//   - Correlation: command classification and correlation id resolution
//   - Logging: structured request logging with command fields
//
// # Usage
//
// Middleware functions follow the standard Go pattern. Correlation must
// wrap Logging for the log line to carry the command fields:
//
//	handler := middleware.Recovery(logger, metrics)(
//	    middleware.RequestID()(
//	        middleware.Correlation(command.Default(), cfg.Correlation, logger)(
//	            middleware.Logging(logger)(yourHandler),
//	        ),
//	    ),
//	)
package middleware
