// Package shell contains the infrastructure shared by all feature slices: the unit of work runner
// with retry, handler results, record mapping, the domain event emitter with its sinks, event
// metadata and the observability helpers used by the observable wrappers.
package shell
