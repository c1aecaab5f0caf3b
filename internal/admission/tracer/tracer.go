// Package tracer provides a lightweight tracing abstraction for the
// admission module. The module emits spans through this interface
// instead of depending on OpenTelemetry APIs directly.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names used by the admission module.
const (
	SpanAdmit     = "admission.admit"
	SpanFilter    = "admission.filter"
	SpanRateLimit = "admission.ratelimit"
)

// Attribute keys used by the admission module. Client IPs are attached
// anonymized, never raw.
const (
	AttrClientIP  = "client.ip"
	AttrAllowed   = "admission.allowed"
	AttrReason    = "admission.reason"
	AttrLimit     = "ratelimit.limit"
	AttrRemaining = "ratelimit.remaining"
	AttrAllowlist = "ratelimit.allowlisted"
)
