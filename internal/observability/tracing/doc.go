// Package tracing provides OpenTelemetry tracing integration.
//
// It offers HTTP middleware that starts a server span per request and a
// tracer accessor used by the use case layer to create child spans.
//
// Example usage:
//
//	shutdown, err := tracing.InitProvider("qna", version, 1.0)
//	if err != nil { ... }
//	defer func() { _ = shutdown(context.Background()) }()
//
//	handler := tracing.Middleware(mux)
package tracing
