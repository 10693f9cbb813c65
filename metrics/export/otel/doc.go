// Package otel provides OpenTelemetry metric exporter bindings for goToken
// counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter instrument for each
// goToken metric. A single callback reads [goToken.Metrics.Snapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate repository state.
package otel
