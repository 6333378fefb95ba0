package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// ActiveLoanConstraint is the partial unique index that allows one active loan per book.
const ActiveLoanConstraint = "loans_one_active_loan_per_book"

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateSerializationFailed = "40001"
	sqlStateDeadlockDetected    = "40P01"
)

// classifyError joins driver errors from pgx and lib/pq with the matching recordstore sentinel.
// Unknown errors are returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code, pgErr.ConstraintName, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code), pqErr.Constraint, err)
	}

	return err
}

func classifySQLState(code string, constraint string, err error) error {
	switch code {
	case sqlStateUniqueViolation:
		if constraint == ActiveLoanConstraint {
			return errors.Join(recordstore.ErrUniqueViolation, recordstore.ErrActiveLoanConflict, err)
		}

		return errors.Join(recordstore.ErrUniqueViolation, err)

	case sqlStateForeignKeyViolation:
		return errors.Join(recordstore.ErrForeignKeyViolation, err)

	case sqlStateCheckViolation:
		return errors.Join(recordstore.ErrCheckViolation, err)

	case sqlStateSerializationFailed, sqlStateDeadlockDetected:
		return errors.Join(recordstore.ErrSerializationConflict, err)

	default:
		return err
	}
}
