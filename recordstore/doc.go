// Package recordstore defines the storage contract for the library's relational records:
// authors, books, borrowers, loans and users.
//
// Records are plain DTOs built on scalars, so engines stay agnostic of the domain types in the
// client code. All reads and writes happen through a Session that belongs to exactly one
// UnitOfWork, which the caller must either commit or roll back.
//
// Two engines are provided:
//   - postgresengine: PostgreSQL via pgx.Pool, sql.DB or sqlx.DB
//   - memengine: an in-memory engine with the same constraints, mostly used in tests
package recordstore
