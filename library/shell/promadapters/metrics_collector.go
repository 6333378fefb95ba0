package promadapters

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-records-go/library/shell"
)

// MetricsCollector implements shell.ContextualMetricsCollector with Prometheus vectors:
//   - RecordDuration -> HistogramVec in seconds
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// Vectors are created and registered on first use of a metric name. The label names are fixed by
// that first use, later calls fill missing labels with "" and drop unknown ones.
type MetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string
	histograms map[string]*labeledVec[*prometheus.HistogramVec]
	counters   map[string]*labeledVec[*prometheus.CounterVec]
	gauges     map[string]*labeledVec[*prometheus.GaugeVec]
	mu         sync.Mutex
}

type labeledVec[V any] struct {
	vec        V
	labelNames []string
}

// NewMetricsCollector creates a MetricsCollector registering its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer, namespace string) *MetricsCollector {
	return &MetricsCollector{
		registerer: registerer,
		namespace:  namespace,
		histograms: make(map[string]*labeledVec[*prometheus.HistogramVec]),
		counters:   make(map[string]*labeledVec[*prometheus.CounterVec]),
		gauges:     make(map[string]*labeledVec[*prometheus.GaugeVec]),
	}
}

func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	h := m.histogram(metric, labels)
	if h == nil {
		return
	}

	h.vec.WithLabelValues(labelValues(h.labelNames, labels)...).Observe(duration.Seconds())
}

func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	c := m.counter(metric, labels)
	if c == nil {
		return
	}

	c.vec.WithLabelValues(labelValues(c.labelNames, labels)...).Inc()
}

func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	g := m.gauge(metric, labels)
	if g == nil {
		return
	}

	g.vec.WithLabelValues(labelValues(g.labelNames, labels)...).Set(value)
}

// The context variants exist so that handlers prefer them, Prometheus has no use for the context.

func (m *MetricsCollector) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	m.RecordDuration(metric, duration, labels)
}

func (m *MetricsCollector) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	m.IncrementCounter(metric, labels)
}

func (m *MetricsCollector) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	m.RecordValue(metric, value, labels)
}

func (m *MetricsCollector) histogram(metric string, labels map[string]string) *labeledVec[*prometheus.HistogramVec] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.histograms[metric]; ok {
		return existing
	}

	names := labelNames(labels)
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      metric,
		Help:      "Duration of " + metric + " in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, names)

	if !m.register(vec) {
		return nil
	}

	created := &labeledVec[*prometheus.HistogramVec]{vec: vec, labelNames: names}
	m.histograms[metric] = created

	return created
}

func (m *MetricsCollector) counter(metric string, labels map[string]string) *labeledVec[*prometheus.CounterVec] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.counters[metric]; ok {
		return existing
	}

	names := labelNames(labels)
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      metric,
		Help:      "Count of " + metric + ".",
	}, names)

	if !m.register(vec) {
		return nil
	}

	created := &labeledVec[*prometheus.CounterVec]{vec: vec, labelNames: names}
	m.counters[metric] = created

	return created
}

func (m *MetricsCollector) gauge(metric string, labels map[string]string) *labeledVec[*prometheus.GaugeVec] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.gauges[metric]; ok {
		return existing
	}

	names := labelNames(labels)
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      metric,
		Help:      "Last value of " + metric + ".",
	}, names)

	if !m.register(vec) {
		return nil
	}

	created := &labeledVec[*prometheus.GaugeVec]{vec: vec, labelNames: names}
	m.gauges[metric] = created

	return created
}

// register reports false for names Prometheus rejects, such metrics are silently skipped.
func (m *MetricsCollector) register(collector prometheus.Collector) bool {
	return m.registerer.Register(collector) == nil
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func labelValues(names []string, labels map[string]string) []string {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = labels[name]
	}

	return values
}

var _ shell.ContextualMetricsCollector = (*MetricsCollector)(nil)
