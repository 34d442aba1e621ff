// Package config provides configuration types and loading for the
// ARI command classifier and its correlation middleware.
//
// Configuration is YAML with environment variable substitution using
// ${VAR} and ${VAR:-default}; "$$" yields a literal dollar sign. Values
// are decoded over DefaultConfig, unknown keys are rejected, and the
// result is validated before it is returned.
//
//	logging:
//	  level: ${LOG_LEVEL:-info}
//	  format: json
//	metrics:
//	  enabled: true
//	  namespace: ariproxy
//	correlation:
//	  pathPrefix: /ari
//	  maxBodySize: 1MiB
//	  header: X-Ari-Correlation-Id
//	  typeHeader: X-Ari-Command-Type
//	  captureResponse: true
//
// Load configuration from a YAML file:
//
//	cfg, err := config.LoadConfig("ariproxy.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
