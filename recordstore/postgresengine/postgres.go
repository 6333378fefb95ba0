package postgresengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-records-go/internal/adapters"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	dialectPostgres = "postgres"

	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBQueryFailed       = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgBeginFailed         = "failed to begin unit of work"
	logMsgCommitFailed        = "failed to commit unit of work"
	logMsgRollbackFailed      = "failed to roll back unit of work"
	logMsgUnitOfWorkCommitted = "unit of work committed"
	logMsgUnitOfWorkReverted  = "unit of work rolled back"
	logMsgSQLExecuted         = "executed sql for: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrAction             = "action"
	logAttrDurationMS         = "duration_ms"
	logAttrIsolation          = "isolation"
)

// Engine opens units of work on a PostgreSQL database.
type Engine struct {
	db               adapters.DBAdapter
	logger           recordstore.Logger
	contextualLogger recordstore.ContextualLogger
	metricsCollector recordstore.MetricsCollector
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	e := &Engine{db: db}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Begin opens a transaction with the isolation level found in ctx (serializable by default).
func (e *Engine) Begin(ctx context.Context) (recordstore.UnitOfWork, error) {
	level := recordstore.GetIsolationLevel(ctx)

	tx, err := e.db.BeginTx(ctx, level)
	if err != nil {
		classified := classifyError(err)
		e.logError(ctx, logMsgBeginFailed, classified, logAttrIsolation, level.String())
		e.recordError(ctx, actionBegin, classified)

		return nil, errors.Join(recordstore.ErrBeginningUnitOfWorkFailed, classified)
	}

	return &unitOfWork{engine: e, tx: tx}, nil
}

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

var _ recordstore.Engine = (*Engine)(nil)
