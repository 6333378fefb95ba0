// Package testdoubles provides spies for the observability interfaces and a recording event
// publisher, for use in tests only.
package testdoubles
