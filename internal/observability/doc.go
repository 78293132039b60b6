// Package observability provides structured logging, tracing and metrics
// for the route matching engine.
//
// # Logging
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
//	logger.Info("routes loaded", observability.Int("routes", 12))
//
// WithContext attaches the request ID and the active span's trace and
// span IDs to every entry.
//
// # Tracing
//
// NewTracer builds an OpenTelemetry tracer provider with an optional OTLP
// gRPC exporter. The router opens one span per traced lookup.
//
// # Metrics
//
// Metrics counts lookups and reloads of the routematch command in its own
// registry. Handler serves it together with the default registry, where
// the router registers its matcher and regex cache metrics.
package observability
