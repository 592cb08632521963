package prometheus

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	webgate "github.com/veltrabank/webgate"
	"github.com/veltrabank/webgate/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() webgate.MetricsSnapshot
}

// Exporter exposes webgate counters as Prometheus metrics. It implements
// [prom.Collector] over the engine's lock-free snapshot, so scrapes never
// contend with the request hot path.
type Exporter struct {
	source metricsSource
	descs  []*prom.Desc
}

var _ prom.Collector = (*Exporter)(nil)

// NewExporter creates a Prometheus exporter that reads from the given
// [webgate.Engine].
func NewExporter(engine *webgate.Engine) *Exporter {
	return NewExporterFromSource(engine)
}

// NewExporterFromSource creates a Prometheus exporter from a custom
// metrics source.
func NewExporterFromSource(source metricsSource) *Exporter {
	descs := make([]*prom.Desc, len(internaldefs.CounterDefs))
	for i, def := range internaldefs.CounterDefs {
		descs[i] = prom.NewDesc(def.Name, def.Help, nil, nil)
	}
	return &Exporter{source: source, descs: descs}
}

// Describe implements [prom.Collector].
func (e *Exporter) Describe(ch chan<- *prom.Desc) {
	for _, d := range e.descs {
		ch <- d
	}
}

// Collect implements [prom.Collector].
func (e *Exporter) Collect(ch chan<- prom.Metric) {
	if e == nil || e.source == nil {
		return
	}

	snapshot := e.source.MetricsSnapshot()
	for i, def := range internaldefs.CounterDefs {
		ch <- prom.MustNewConstMetric(
			e.descs[i],
			prom.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}
}

// Handler returns an http.Handler serving the exporter's metrics on a
// dedicated registry.
func (e *Exporter) Handler() http.Handler {
	registry := prom.NewRegistry()
	registry.MustRegister(e)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
