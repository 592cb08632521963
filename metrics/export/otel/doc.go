// Package otel provides OpenTelemetry metric exporter bindings for webgate
// counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter per webgate metric.
// A single callback reads [webgate.Engine.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
