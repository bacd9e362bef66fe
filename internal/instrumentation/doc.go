// Package instrumentation provides OpenTelemetry metrics and tracing for
// mailvault.
//
// The Provider wires a meter provider (Prometheus, OTLP or stdout exporter)
// and an optional tracer provider (OTLP or stdout), and exposes a Metrics
// recorder with the archive pipeline's instruments: invocation counts and
// durations, per-message outcomes, token refreshes and storage writes.
// A disabled provider records nothing; all recorder methods are safe on the
// zero value.
package instrumentation
