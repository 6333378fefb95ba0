// Package promadapters implements the MetricsCollector interfaces with Prometheus collectors
// and provides the HTTP request metrics exposed on /metrics.
package promadapters
