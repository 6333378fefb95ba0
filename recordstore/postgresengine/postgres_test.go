package postgresengine_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records-go/testutil/testdoubles"
)

var loanColumns = []string{"id", "book_id", "borrower_id", "loan_date", "return_date", "created_at", "updated_at"}

func setupEngine(t *testing.T, options ...postgresengine.Option) (*postgresengine.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	engine, err := postgresengine.NewEngineFromSQLDB(db, options...)
	require.NoError(t, err)

	return engine, mock
}

func Test_NewEngine_RejectsNilConnection(t *testing.T) {
	_, err := postgresengine.NewEngineFromSQLDB(nil)
	assert.ErrorIs(t, err, recordstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewEngineFromPGXPool(nil)
	assert.ErrorIs(t, err, recordstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewEngineFromSQLX(nil)
	assert.ErrorIs(t, err, recordstore.ErrNilDatabaseConnection)
}

func Test_LoanStore_Create_ReturnsRefreshedRecord(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)
	loanID, bookID, borrowerID := uuid.New(), uuid.New(), uuid.New()
	loanDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "loans"`).
		WillReturnRows(sqlmock.NewRows(loanColumns).
			AddRow(loanID.String(), bookID.String(), borrowerID.String(), loanDate, nil, createdAt, createdAt))
	mock.ExpectCommit()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	created, err := uow.Loans().Create(ctx, recordstore.LoanRecord{
		ID:         loanID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		LoanDate:   loanDate,
	})
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	// assert
	assert.Equal(t, loanID, created.ID)
	assert.Equal(t, bookID, created.BookID)
	assert.True(t, created.IsActive())
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LoanStore_Create_ClassifiesActiveLoanIndexViolation(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "loans"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: postgresengine.ActiveLoanConstraint})
	mock.ExpectRollback()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: uuid.New(), BorrowerID: uuid.New(), LoanDate: time.Now()})
	rollbackErr := uow.Rollback(ctx)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrWritingRecordFailed)
	assert.ErrorIs(t, err, recordstore.ErrUniqueViolation)
	assert.ErrorIs(t, err, recordstore.ErrActiveLoanConflict)
	assert.NoError(t, rollbackErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_BorrowerStore_Create_ClassifiesEmailUniqueViolation(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "borrowers"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "borrowers_email_key"})
	mock.ExpectRollback()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	_, err = uow.Borrowers().Create(ctx, recordstore.BorrowerRecord{Name: "Jane", Email: "jane@example.com", Phone: "+15551234567"})
	_ = uow.Rollback(ctx)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrUniqueViolation)
	assert.NotErrorIs(t, err, recordstore.ErrActiveLoanConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LoanStore_GetByID_NotFoundIsNoError(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "loans" WHERE`).WillReturnRows(sqlmock.NewRows(loanColumns))
	mock.ExpectCommit()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	_, found, err := uow.Loans().GetByID(ctx, uuid.New())
	require.NoError(t, uow.Commit(ctx))

	// assert
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LoanStore_ListActive_ScansReturnDates(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "loans" WHERE \("return_date" IS NULL\)`).
		WillReturnRows(sqlmock.NewRows(loanColumns).
			AddRow(uuid.NewString(), uuid.NewString(), uuid.NewString(), now, nil, now, now))
	mock.ExpectCommit()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	active, err := uow.Loans().ListActive(ctx)
	require.NoError(t, uow.Commit(ctx))

	// assert
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Nil(t, active[0].ReturnDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LoanStore_HasActiveForBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "loans"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "loans"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectCommit()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	hasActive, err1 := uow.Loans().HasActiveForBook(ctx, uuid.New())
	activeCount, err2 := uow.Loans().CountActiveByBorrower(ctx, uuid.New())
	require.NoError(t, uow.Commit(ctx))

	// assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, hasActive)
	assert.Equal(t, 0, activeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_BookStore_Delete_MissingRecordIsNoOp(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "books"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	err = uow.Books().Delete(ctx, uuid.New())
	require.NoError(t, uow.Commit(ctx))

	// assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_AuthorStore_Update_MissingRecord(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "authors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bio", "created_at", "updated_at"}))
	mock.ExpectRollback()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	_, err = uow.Authors().Update(ctx, recordstore.AuthorRecord{ID: uuid.New(), Name: "A. Poe"})
	_ = uow.Rollback(ctx)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_UnitOfWork_Commit_ClassifiesSerializationFailure(t *testing.T) {
	// arrange
	ctx := context.Background()
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	engine, mock := setupEngine(t, postgresengine.WithMetrics(metrics))

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	err = uow.Commit(ctx)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrCommittingUnitOfWorkFailed)
	assert.ErrorIs(t, err, recordstore.ErrSerializationConflict)
	assert.True(t, metrics.HasCounter("recordstore_units_of_work_total", map[string]string{"outcome": "commit_failed"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_UnitOfWork_IsClosedAfterCommit(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	// act
	rollbackErr := uow.Rollback(ctx)
	_, listErr := uow.Authors().List(ctx)
	commitErr := uow.Commit(ctx)

	// assert
	assert.NoError(t, rollbackErr)
	assert.ErrorIs(t, listErr, recordstore.ErrUnitOfWorkClosed)
	assert.ErrorIs(t, commitErr, recordstore.ErrUnitOfWorkClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Engine_Begin_HonoursReadCommitted(t *testing.T) {
	// arrange
	ctx := recordstore.WithReadCommitted(context.Background())
	logHandler := testdoubles.NewLogHandlerSpy(false)
	engine, mock := setupEngine(t, postgresengine.WithLogger(logHandler.Logger()))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(uuid.NewString(), "admin", "hash", time.Now()))
	mock.ExpectRollback()

	// act
	uow, err := engine.Begin(ctx)
	require.NoError(t, err)

	user, found, err := uow.Users().GetByUsername(ctx, "admin")
	require.NoError(t, uow.Rollback(ctx))

	// assert
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, logHandler.HasMessagePrefix("executed sql for: users.get"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Engine_Begin_Failure(t *testing.T) {
	// arrange
	engine, mock := setupEngine(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	// act
	_, err := engine.Begin(context.Background())

	// assert
	assert.ErrorIs(t, err, recordstore.ErrBeginningUnitOfWorkFailed)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
