// Package adapters provides database adapter implementations shared by the PostgreSQL engines.
//
// It supports pgx.Pool, sql.DB and sqlx.DB behind one DBAdapter interface, so the engines can
// run parameterized statements and transactions without knowing which driver is underneath.
package adapters
