// Package postgreswrapper starts a migrated Postgres for integration tests, run them with -tags integration.
package postgreswrapper
