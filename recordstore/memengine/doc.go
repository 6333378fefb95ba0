// Package memengine implements recordstore.Engine in memory.
//
// Each unit of work operates on a private snapshot of the whole store taken at Begin. Commit
// publishes the snapshot only if no other writing unit of work committed in the meantime, else it
// fails with recordstore.ErrSerializationConflict, mirroring a serializable PostgreSQL transaction.
// Writes enforce the same constraints as the PostgreSQL schema: unique borrower emails and
// usernames, at most one active loan per book, foreign keys, and return dates not before loan dates.
package memengine
