// Package prometheus provides a Prometheus collector for webgate metrics.
//
// [NewExporter] accepts a [webgate.Engine] and implements
// prometheus.Collector over its counter snapshot; [Exporter.Handler] mounts
// it on a dedicated registry. Counter names are prefixed webgate_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry — callers mount
//     the Handler or register the collector themselves.
//   - Mutate engine state.
package prometheus
