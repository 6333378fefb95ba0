// Package postgresengine implements recordstore.Engine on PostgreSQL.
//
// It supports three connection types: pgx.Pool, sql.DB (lib/pq) and sqlx.DB. SQL is built with
// goqu using the postgres dialect and prepared placeholders. Every unit of work is a database
// transaction, serializable by default (see recordstore.WithReadCommitted).
//
// Driver errors are classified into the recordstore sentinels, most importantly
// recordstore.ErrActiveLoanConflict for a violation of the partial unique index that allows at
// most one active loan per book, and recordstore.ErrSerializationConflict for SQLSTATE 40001.
//
// The schema lives in the embedded migrations directory and is applied with MigrateUp.
package postgresengine
