package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	tableAuthors   = "authors"
	tableBooks     = "books"
	tableBorrowers = "borrowers"
	tableLoans     = "loans"
	tableUsers     = "users"

	colName          = "name"
	colBio           = "bio"
	colTitle         = "title"
	colISBN          = "isbn"
	colPublishedDate = "published_date"
	colAuthorID      = "author_id"
	colEmail         = "email"
	colPhone         = "phone"
	colBookID        = "book_id"
	colBorrowerID    = "borrower_id"
	colLoanDate      = "loan_date"
	colReturnDate    = "return_date"
	colUsername      = "username"
	colPasswordHash  = "password_hash"
)

func defaultOrder() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.I(colCreatedAt).Asc(), goqu.I(colID).Asc()}
}

var authors = table[recordstore.AuthorRecord]{
	name:    tableAuthors,
	columns: []any{colID, colName, colBio, colCreatedAt, colUpdatedAt},
	order:   defaultOrder(),
	scan:    scanAuthor,
}

var books = table[recordstore.BookRecord]{
	name:    tableBooks,
	columns: []any{colID, colTitle, colISBN, colPublishedDate, colAuthorID, colCreatedAt, colUpdatedAt},
	order:   defaultOrder(),
	scan:    scanBook,
}

var borrowers = table[recordstore.BorrowerRecord]{
	name:    tableBorrowers,
	columns: []any{colID, colName, colEmail, colPhone, colCreatedAt, colUpdatedAt},
	order:   defaultOrder(),
	scan:    scanBorrower,
}

var loans = table[recordstore.LoanRecord]{
	name:    tableLoans,
	columns: []any{colID, colBookID, colBorrowerID, colLoanDate, colReturnDate, colCreatedAt, colUpdatedAt},
	order:   []exp.OrderedExpression{goqu.I(colLoanDate).Asc(), goqu.I(colCreatedAt).Asc(), goqu.I(colID).Asc()},
	scan:    scanLoan,
}

var users = table[recordstore.UserRecord]{
	name:    tableUsers,
	columns: []any{colID, colUsername, colPasswordHash, colCreatedAt},
	order:   defaultOrder(),
	scan:    scanUser,
}

/*** authors ***/

type authorStore struct {
	uow *unitOfWork
}

func (s authorStore) List(ctx context.Context) ([]recordstore.AuthorRecord, error) {
	return authors.list(ctx, s.uow)
}

func (s authorStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.AuthorRecord, bool, error) {
	return authors.getByID(ctx, s.uow, id)
}

func (s authorStore) Create(ctx context.Context, r recordstore.AuthorRecord) (recordstore.AuthorRecord, error) {
	return authors.insert(ctx, s.uow, goqu.Record{
		colID:   idOrNew(r.ID).String(),
		colName: r.Name,
		colBio:  nullable(r.Bio),
	})
}

func (s authorStore) Update(ctx context.Context, r recordstore.AuthorRecord) (recordstore.AuthorRecord, error) {
	return authors.update(ctx, s.uow, r.ID, goqu.Record{
		colName: r.Name,
		colBio:  nullable(r.Bio),
	})
}

func (s authorStore) Delete(ctx context.Context, id uuid.UUID) error {
	return authors.delete(ctx, s.uow, id)
}

/*** books ***/

type bookStore struct {
	uow *unitOfWork
}

func (s bookStore) List(ctx context.Context) ([]recordstore.BookRecord, error) {
	return books.list(ctx, s.uow)
}

func (s bookStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.BookRecord, bool, error) {
	return books.getByID(ctx, s.uow, id)
}

func (s bookStore) Create(ctx context.Context, r recordstore.BookRecord) (recordstore.BookRecord, error) {
	return books.insert(ctx, s.uow, goqu.Record{
		colID:            idOrNew(r.ID).String(),
		colTitle:         r.Title,
		colISBN:          r.ISBN,
		colPublishedDate: r.PublishedDate,
		colAuthorID:      r.AuthorID.String(),
	})
}

func (s bookStore) Update(ctx context.Context, r recordstore.BookRecord) (recordstore.BookRecord, error) {
	return books.update(ctx, s.uow, r.ID, goqu.Record{
		colTitle:         r.Title,
		colISBN:          r.ISBN,
		colPublishedDate: r.PublishedDate,
		colAuthorID:      r.AuthorID.String(),
	})
}

func (s bookStore) Delete(ctx context.Context, id uuid.UUID) error {
	return books.delete(ctx, s.uow, id)
}

func (s bookStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]recordstore.BookRecord, error) {
	return books.list(ctx, s.uow, goqu.C(colAuthorID).Eq(authorID.String()))
}

/*** borrowers ***/

type borrowerStore struct {
	uow *unitOfWork
}

func (s borrowerStore) List(ctx context.Context) ([]recordstore.BorrowerRecord, error) {
	return borrowers.list(ctx, s.uow)
}

func (s borrowerStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.BorrowerRecord, bool, error) {
	return borrowers.getByID(ctx, s.uow, id)
}

func (s borrowerStore) Create(ctx context.Context, r recordstore.BorrowerRecord) (recordstore.BorrowerRecord, error) {
	return borrowers.insert(ctx, s.uow, goqu.Record{
		colID:    idOrNew(r.ID).String(),
		colName:  r.Name,
		colEmail: r.Email,
		colPhone: r.Phone,
	})
}

func (s borrowerStore) Update(ctx context.Context, r recordstore.BorrowerRecord) (recordstore.BorrowerRecord, error) {
	return borrowers.update(ctx, s.uow, r.ID, goqu.Record{
		colName:  r.Name,
		colEmail: r.Email,
		colPhone: r.Phone,
	})
}

func (s borrowerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return borrowers.delete(ctx, s.uow, id)
}

/*** loans ***/

type loanStore struct {
	uow *unitOfWork
}

func (s loanStore) List(ctx context.Context) ([]recordstore.LoanRecord, error) {
	return loans.list(ctx, s.uow)
}

func (s loanStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.LoanRecord, bool, error) {
	return loans.getByID(ctx, s.uow, id)
}

func (s loanStore) Create(ctx context.Context, r recordstore.LoanRecord) (recordstore.LoanRecord, error) {
	return loans.insert(ctx, s.uow, goqu.Record{
		colID:         idOrNew(r.ID).String(),
		colBookID:     r.BookID.String(),
		colBorrowerID: r.BorrowerID.String(),
		colLoanDate:   r.LoanDate,
		colReturnDate: nullable(r.ReturnDate),
	})
}

func (s loanStore) Update(ctx context.Context, r recordstore.LoanRecord) (recordstore.LoanRecord, error) {
	return loans.update(ctx, s.uow, r.ID, goqu.Record{
		colBookID:     r.BookID.String(),
		colBorrowerID: r.BorrowerID.String(),
		colLoanDate:   r.LoanDate,
		colReturnDate: nullable(r.ReturnDate),
	})
}

func (s loanStore) Delete(ctx context.Context, id uuid.UUID) error {
	return loans.delete(ctx, s.uow, id)
}

func (s loanStore) ListActive(ctx context.Context) ([]recordstore.LoanRecord, error) {
	return loans.list(ctx, s.uow, goqu.C(colReturnDate).IsNull())
}

func (s loanStore) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]recordstore.LoanRecord, error) {
	return loans.list(ctx, s.uow, goqu.C(colBorrowerID).Eq(borrowerID.String()))
}

func (s loanStore) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	return loans.count(ctx, s.uow, goqu.C(colBorrowerID).Eq(borrowerID.String()), goqu.C(colReturnDate).IsNull())
}

func (s loanStore) HasActiveForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	count, err := loans.count(ctx, s.uow, goqu.C(colBookID).Eq(bookID.String()), goqu.C(colReturnDate).IsNull())

	return count > 0, err
}

/*** users ***/

type userStore struct {
	uow *unitOfWork
}

func (s userStore) List(ctx context.Context) ([]recordstore.UserRecord, error) {
	return users.list(ctx, s.uow)
}

func (s userStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.UserRecord, bool, error) {
	return users.getByID(ctx, s.uow, id)
}

func (s userStore) GetByUsername(ctx context.Context, username string) (recordstore.UserRecord, bool, error) {
	return users.get(ctx, s.uow, goqu.C(colUsername).Eq(username))
}

func (s userStore) Create(ctx context.Context, r recordstore.UserRecord) (recordstore.UserRecord, error) {
	return users.insert(ctx, s.uow, goqu.Record{
		colID:           idOrNew(r.ID).String(),
		colUsername:     r.Username,
		colPasswordHash: r.PasswordHash,
	})
}

// Update changes the password hash, users have no updated_at column.
func (s userStore) Update(ctx context.Context, r recordstore.UserRecord) (recordstore.UserRecord, error) {
	stmt := builder().
		Update(tableUsers).
		Prepared(true).
		Set(goqu.Record{colUsername: r.Username, colPasswordHash: r.PasswordHash}).
		Where(goqu.C(colID).Eq(r.ID.String())).
		Returning(users.columns...)

	record, found, err := queryFirst(ctx, s.uow, tableUsers+opUpdate, recordstore.ErrWritingRecordFailed, stmt, users.scan)
	if err != nil {
		return record, err
	}

	if !found {
		return record, recordstore.ErrRecordNotFound
	}

	return record, nil
}

func (s userStore) Delete(ctx context.Context, id uuid.UUID) error {
	return users.delete(ctx, s.uow, id)
}
