package memengine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

/*** authors ***/

type authorStore struct {
	uow *unitOfWork
}

func (s authorStore) List(ctx context.Context) ([]recordstore.AuthorRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.authors.filter(nil), nil
}

func (s authorStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.AuthorRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.AuthorRecord{}, false, err
	}

	record, found := s.uow.state.authors.get(id)

	return record, found, nil
}

func (s authorStore) Create(ctx context.Context, r recordstore.AuthorRecord) (recordstore.AuthorRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	r.ID = idOrNew(r.ID)
	if _, exists := s.uow.state.authors.get(r.ID); exists {
		return r, errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	r.CreatedAt = s.uow.engine.now()
	r.UpdatedAt = r.CreatedAt
	s.uow.state.authors.put(r.ID, r)

	return r, nil
}

func (s authorStore) Update(ctx context.Context, r recordstore.AuthorRecord) (recordstore.AuthorRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	existing, found := s.uow.state.authors.get(r.ID)
	if !found {
		return r, recordstore.ErrRecordNotFound
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.uow.engine.now()
	s.uow.state.authors.put(r.ID, r)

	return r, nil
}

// Delete refuses to remove an author still referenced by books, like ON DELETE RESTRICT.
func (s authorStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.uow.write(ctx); err != nil {
		return err
	}

	if s.uow.state.books.exists(func(b recordstore.BookRecord) bool { return b.AuthorID == id }) {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrForeignKeyViolation)
	}

	s.uow.state.authors.remove(id)

	return nil
}

/*** books ***/

type bookStore struct {
	uow *unitOfWork
}

func (s bookStore) List(ctx context.Context) ([]recordstore.BookRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.books.filter(nil), nil
}

func (s bookStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]recordstore.BookRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.books.filter(func(b recordstore.BookRecord) bool { return b.AuthorID == authorID }), nil
}

func (s bookStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.BookRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.BookRecord{}, false, err
	}

	record, found := s.uow.state.books.get(id)

	return record, found, nil
}

func (s bookStore) Create(ctx context.Context, r recordstore.BookRecord) (recordstore.BookRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	r.ID = idOrNew(r.ID)
	if _, exists := s.uow.state.books.get(r.ID); exists {
		return r, errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	if err := s.checkAuthor(r.AuthorID); err != nil {
		return r, err
	}

	r.CreatedAt = s.uow.engine.now()
	r.UpdatedAt = r.CreatedAt
	s.uow.state.books.put(r.ID, r)

	return r, nil
}

func (s bookStore) Update(ctx context.Context, r recordstore.BookRecord) (recordstore.BookRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	existing, found := s.uow.state.books.get(r.ID)
	if !found {
		return r, recordstore.ErrRecordNotFound
	}

	if err := s.checkAuthor(r.AuthorID); err != nil {
		return r, err
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.uow.engine.now()
	s.uow.state.books.put(r.ID, r)

	return r, nil
}

// Delete cascades to the book's loans.
func (s bookStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.uow.write(ctx); err != nil {
		return err
	}

	s.uow.state.loans.removeWhere(func(l recordstore.LoanRecord) bool { return l.BookID == id })
	s.uow.state.books.remove(id)

	return nil
}

func (s bookStore) checkAuthor(authorID uuid.UUID) error {
	if _, found := s.uow.state.authors.get(authorID); !found {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrForeignKeyViolation)
	}

	return nil
}

/*** borrowers ***/

type borrowerStore struct {
	uow *unitOfWork
}

func (s borrowerStore) List(ctx context.Context) ([]recordstore.BorrowerRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.borrowers.filter(nil), nil
}

func (s borrowerStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.BorrowerRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.BorrowerRecord{}, false, err
	}

	record, found := s.uow.state.borrowers.get(id)

	return record, found, nil
}

func (s borrowerStore) Create(ctx context.Context, r recordstore.BorrowerRecord) (recordstore.BorrowerRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	r.ID = idOrNew(r.ID)
	if _, exists := s.uow.state.borrowers.get(r.ID); exists {
		return r, errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	if err := s.checkEmail(r); err != nil {
		return r, err
	}

	r.CreatedAt = s.uow.engine.now()
	r.UpdatedAt = r.CreatedAt
	s.uow.state.borrowers.put(r.ID, r)

	return r, nil
}

func (s borrowerStore) Update(ctx context.Context, r recordstore.BorrowerRecord) (recordstore.BorrowerRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	existing, found := s.uow.state.borrowers.get(r.ID)
	if !found {
		return r, recordstore.ErrRecordNotFound
	}

	if err := s.checkEmail(r); err != nil {
		return r, err
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.uow.engine.now()
	s.uow.state.borrowers.put(r.ID, r)

	return r, nil
}

// Delete cascades to the borrower's loans.
func (s borrowerStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.uow.write(ctx); err != nil {
		return err
	}

	s.uow.state.loans.removeWhere(func(l recordstore.LoanRecord) bool { return l.BorrowerID == id })
	s.uow.state.borrowers.remove(id)

	return nil
}

func (s borrowerStore) checkEmail(r recordstore.BorrowerRecord) error {
	taken := s.uow.state.borrowers.exists(func(other recordstore.BorrowerRecord) bool {
		return other.ID != r.ID && other.Email == r.Email
	})

	if taken {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	return nil
}

/*** loans ***/

type loanStore struct {
	uow *unitOfWork
}

func (s loanStore) List(ctx context.Context) ([]recordstore.LoanRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.loans.filter(nil), nil
}

func (s loanStore) ListActive(ctx context.Context) ([]recordstore.LoanRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.loans.filter(recordstore.LoanRecord.IsActive), nil
}

func (s loanStore) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]recordstore.LoanRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.loans.filter(func(l recordstore.LoanRecord) bool { return l.BorrowerID == borrowerID }), nil
}

func (s loanStore) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	if err := s.uow.access(ctx); err != nil {
		return 0, err
	}

	active := s.uow.state.loans.filter(func(l recordstore.LoanRecord) bool {
		return l.BorrowerID == borrowerID && l.IsActive()
	})

	return len(active), nil
}

func (s loanStore) HasActiveForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return false, err
	}

	return s.hasOtherActive(uuid.Nil, bookID), nil
}

func (s loanStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.LoanRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.LoanRecord{}, false, err
	}

	record, found := s.uow.state.loans.get(id)

	return record, found, nil
}

func (s loanStore) Create(ctx context.Context, r recordstore.LoanRecord) (recordstore.LoanRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	r.ID = idOrNew(r.ID)
	if _, exists := s.uow.state.loans.get(r.ID); exists {
		return r, errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	if err := s.checkConstraints(r); err != nil {
		return r, err
	}

	r.CreatedAt = s.uow.engine.now()
	r.UpdatedAt = r.CreatedAt
	s.uow.state.loans.put(r.ID, r)

	return r, nil
}

func (s loanStore) Update(ctx context.Context, r recordstore.LoanRecord) (recordstore.LoanRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	existing, found := s.uow.state.loans.get(r.ID)
	if !found {
		return r, recordstore.ErrRecordNotFound
	}

	if err := s.checkConstraints(r); err != nil {
		return r, err
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.uow.engine.now()
	s.uow.state.loans.put(r.ID, r)

	return r, nil
}

func (s loanStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.uow.write(ctx); err != nil {
		return err
	}

	s.uow.state.loans.remove(id)

	return nil
}

func (s loanStore) checkConstraints(r recordstore.LoanRecord) error {
	_, bookFound := s.uow.state.books.get(r.BookID)
	_, borrowerFound := s.uow.state.borrowers.get(r.BorrowerID)

	if !bookFound || !borrowerFound {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrForeignKeyViolation)
	}

	if r.ReturnDate != nil && r.ReturnDate.Before(r.LoanDate) {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrCheckViolation)
	}

	if r.IsActive() && s.hasOtherActive(r.ID, r.BookID) {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation, recordstore.ErrActiveLoanConflict)
	}

	return nil
}

func (s loanStore) hasOtherActive(loanID uuid.UUID, bookID uuid.UUID) bool {
	return s.uow.state.loans.exists(func(l recordstore.LoanRecord) bool {
		return l.ID != loanID && l.BookID == bookID && l.IsActive()
	})
}

/*** users ***/

type userStore struct {
	uow *unitOfWork
}

func (s userStore) List(ctx context.Context) ([]recordstore.UserRecord, error) {
	if err := s.uow.access(ctx); err != nil {
		return nil, err
	}

	return s.uow.state.users.filter(nil), nil
}

func (s userStore) GetByID(ctx context.Context, id uuid.UUID) (recordstore.UserRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.UserRecord{}, false, err
	}

	record, found := s.uow.state.users.get(id)

	return record, found, nil
}

func (s userStore) GetByUsername(ctx context.Context, username string) (recordstore.UserRecord, bool, error) {
	if err := s.uow.access(ctx); err != nil {
		return recordstore.UserRecord{}, false, err
	}

	matches := s.uow.state.users.filter(func(u recordstore.UserRecord) bool { return u.Username == username })
	if len(matches) == 0 {
		return recordstore.UserRecord{}, false, nil
	}

	return matches[0], true, nil
}

func (s userStore) Create(ctx context.Context, r recordstore.UserRecord) (recordstore.UserRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	r.ID = idOrNew(r.ID)
	if _, exists := s.uow.state.users.get(r.ID); exists {
		return r, errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	if err := s.checkUsername(r); err != nil {
		return r, err
	}

	r.CreatedAt = s.uow.engine.now()
	s.uow.state.users.put(r.ID, r)

	return r, nil
}

func (s userStore) Update(ctx context.Context, r recordstore.UserRecord) (recordstore.UserRecord, error) {
	if err := s.uow.write(ctx); err != nil {
		return r, err
	}

	existing, found := s.uow.state.users.get(r.ID)
	if !found {
		return r, recordstore.ErrRecordNotFound
	}

	if err := s.checkUsername(r); err != nil {
		return r, err
	}

	r.CreatedAt = existing.CreatedAt
	s.uow.state.users.put(r.ID, r)

	return r, nil
}

func (s userStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.uow.write(ctx); err != nil {
		return err
	}

	s.uow.state.users.remove(id)

	return nil
}

func (s userStore) checkUsername(r recordstore.UserRecord) error {
	taken := s.uow.state.users.exists(func(other recordstore.UserRecord) bool {
		return other.ID != r.ID && other.Username == r.Username
	})

	if taken {
		return errors.Join(recordstore.ErrWritingRecordFailed, recordstore.ErrUniqueViolation)
	}

	return nil
}
