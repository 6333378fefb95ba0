// Package helper contains Given* arrange helpers and a fake clock for tests that run against a
// recordstore.Engine.
package helper
