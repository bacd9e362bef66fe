package instrumentation

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope name for mailvault spans.
const TracerName = "github.com/teemow/mailvault"

// Tracer returns the application tracer from the global provider. When no
// tracer provider is registered this yields a no-op tracer, so callers can
// always start spans.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
