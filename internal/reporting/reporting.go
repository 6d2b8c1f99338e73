// Package reporting defines the narrow collaborator interfaces the core
// depends on for crash reporting and analytics: an error sink and an event
// sink. Both are fire-and-forget; implementations never return errors to
// callers and must be cheap enough to call on hot paths.
package reporting

import "context"

// ErrorSink receives failures worth surfacing to an external error reporter.
type ErrorSink interface {
	// Report records an exception-like failure.
	Report(ctx context.Context, err error)

	// Log records a breadcrumb message for later correlation.
	Log(ctx context.Context, msg string)

	// SetKey attaches a key/value pair to subsequent reports.
	SetKey(ctx context.Context, key string, value any)
}

// EventSink receives analytics events by name with optional parameters.
type EventSink interface {
	Event(ctx context.Context, name string, params map[string]any)
}

// NoopSink implements both sinks and discards everything. Useful as the
// default wiring and in tests.
type NoopSink struct{}

func (NoopSink) Report(context.Context, error)              {}
func (NoopSink) Log(context.Context, string)                {}
func (NoopSink) SetKey(context.Context, string, any)        {}
func (NoopSink) Event(context.Context, string, map[string]any) {}
