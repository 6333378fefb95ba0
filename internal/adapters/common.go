package adapters

import (
	"database/sql"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// stdRows wraps standard library sql.Rows to implement DBRows.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

func stdTxOptions(level recordstore.IsolationLevel) *sql.TxOptions {
	switch level {
	case recordstore.ReadCommitted:
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	default:
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
}
