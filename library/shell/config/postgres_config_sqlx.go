package config

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NewSQLX wraps a configured *sql.DB as *sqlx.DB.
func NewSQLX(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := NewSQLDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, "postgres"), nil
}
