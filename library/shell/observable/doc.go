// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrappers never change the outcome of the wrapped handler, they only translate it into
// observability signals: HandlerResult metadata for commands, timing and errors for queries.
package observable
