// Package oteladapters implements the observability interfaces on top of OpenTelemetry:
// a TracingCollector creating OTel spans and slog handlers that correlate log records with
// the active span and bridge them into the OTel logs pipeline.
package oteladapters
