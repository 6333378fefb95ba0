package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-records-go/internal/adapters"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

type scanFunc[T any] func(rows adapters.DBRows) (T, error)

// unitOfWork is one database transaction. It is not safe for concurrent use.
type unitOfWork struct {
	engine *Engine
	tx     adapters.DBTx
	closed bool
}

func (u *unitOfWork) Authors() recordstore.AuthorStore {
	return authorStore{uow: u}
}

func (u *unitOfWork) Books() recordstore.BookStore {
	return bookStore{uow: u}
}

func (u *unitOfWork) Borrowers() recordstore.BorrowerStore {
	return borrowerStore{uow: u}
}

func (u *unitOfWork) Loans() recordstore.LoanStore {
	return loanStore{uow: u}
}

func (u *unitOfWork) Users() recordstore.UserStore {
	return userStore{uow: u}
}

// Commit commits the transaction. A serialization failure at commit time is reported as
// recordstore.ErrSerializationConflict.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.closed {
		return recordstore.ErrUnitOfWorkClosed
	}

	u.closed = true

	if err := u.tx.Commit(ctx); err != nil {
		classified := classifyError(err)
		u.engine.logError(ctx, logMsgCommitFailed, classified)
		u.engine.recordError(ctx, actionCommit, classified)
		u.engine.recordOutcome(ctx, outcomeCommitFailed)

		return errors.Join(recordstore.ErrCommittingUnitOfWorkFailed, classified)
	}

	u.engine.logOperation(ctx, logMsgUnitOfWorkCommitted)
	u.engine.recordOutcome(ctx, outcomeCommitted)

	return nil
}

// Rollback rolls the transaction back. It is a no-op after Commit or a previous Rollback.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.closed {
		return nil
	}

	u.closed = true

	if err := u.tx.Rollback(ctx); err != nil {
		u.engine.logWarning(ctx, logMsgRollbackFailed, err)
		u.engine.recordError(ctx, actionRollback, err)

		return err
	}

	u.engine.logOperation(ctx, logMsgUnitOfWorkReverted)
	u.engine.recordOutcome(ctx, outcomeRolledBack)

	return nil
}

// queryRecords runs a statement that returns rows and scans all of them.
// failure is the sentinel joined into every execution error.
func queryRecords[T any](
	ctx context.Context,
	u *unitOfWork,
	action string,
	failure error,
	stmt sqlBuilder,
	scan scanFunc[T],
) ([]T, error) {

	if u.closed {
		return nil, recordstore.ErrUnitOfWorkClosed
	}

	sqlQuery, args, buildErr := stmt.ToSQL()
	if buildErr != nil {
		u.engine.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrAction, action)
		return nil, errors.Join(recordstore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	rows, queryErr := u.tx.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	u.engine.logQueryWithDuration(ctx, sqlQuery, action, duration)
	u.engine.recordDuration(ctx, action, duration)

	if queryErr != nil {
		return nil, u.statementFailed(ctx, action, sqlQuery, failure, queryErr)
	}
	defer u.closeRows(ctx, rows)

	records := make([]T, 0)

	for rows.Next() {
		record, scanErr := scan(rows)
		if scanErr != nil {
			u.engine.logError(ctx, logMsgScanRowFailed, scanErr, logAttrAction, action)
			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		records = append(records, record)
	}

	// pgx reports constraint violations of INSERT ... RETURNING only here
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, u.statementFailed(ctx, action, sqlQuery, failure, rowsErr)
	}

	return records, nil
}

// queryFirst runs a statement and returns its first row, found is false when there is none.
func queryFirst[T any](
	ctx context.Context,
	u *unitOfWork,
	action string,
	failure error,
	stmt sqlBuilder,
	scan scanFunc[T],
) (T, bool, error) {

	var empty T

	records, err := queryRecords(ctx, u, action, failure, stmt, scan)
	if err != nil {
		return empty, false, err
	}

	if len(records) == 0 {
		return empty, false, nil
	}

	return records[0], true, nil
}

// execStatement runs a statement without result rows and returns the affected row count.
func execStatement(ctx context.Context, u *unitOfWork, action string, stmt sqlBuilder) (int64, error) {
	if u.closed {
		return 0, recordstore.ErrUnitOfWorkClosed
	}

	sqlQuery, args, buildErr := stmt.ToSQL()
	if buildErr != nil {
		u.engine.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrAction, action)
		return 0, errors.Join(recordstore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	result, execErr := u.tx.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	u.engine.logQueryWithDuration(ctx, sqlQuery, action, duration)
	u.engine.recordDuration(ctx, action, duration)

	if execErr != nil {
		return 0, u.statementFailed(ctx, action, sqlQuery, recordstore.ErrWritingRecordFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return 0, errors.Join(recordstore.ErrWritingRecordFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

func (u *unitOfWork) statementFailed(ctx context.Context, action, sqlQuery string, failure, err error) error {
	classified := classifyError(err)
	u.engine.logError(ctx, logMsgDBQueryFailed, classified, logAttrAction, action, logAttrQuery, sqlQuery)
	u.engine.recordError(ctx, action, classified)

	return errors.Join(failure, classified)
}

func (u *unitOfWork) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		u.engine.logWarning(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
