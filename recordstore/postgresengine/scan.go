package postgresengine

import (
	"time"

	"github.com/AntonStoeckl/library-records-go/internal/adapters"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

func scanAuthor(rows adapters.DBRows) (recordstore.AuthorRecord, error) {
	var r recordstore.AuthorRecord

	if err := rows.Scan(&r.ID, &r.Name, &r.Bio, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return r, err
	}

	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()

	return r, nil
}

func scanBook(rows adapters.DBRows) (recordstore.BookRecord, error) {
	var r recordstore.BookRecord

	if err := rows.Scan(&r.ID, &r.Title, &r.ISBN, &r.PublishedDate, &r.AuthorID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return r, err
	}

	r.PublishedDate = r.PublishedDate.UTC()
	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()

	return r, nil
}

func scanBorrower(rows adapters.DBRows) (recordstore.BorrowerRecord, error) {
	var r recordstore.BorrowerRecord

	if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return r, err
	}

	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()

	return r, nil
}

func scanLoan(rows adapters.DBRows) (recordstore.LoanRecord, error) {
	var r recordstore.LoanRecord
	var returnDate *time.Time

	if err := rows.Scan(&r.ID, &r.BookID, &r.BorrowerID, &r.LoanDate, &returnDate, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return r, err
	}

	if returnDate != nil {
		utc := returnDate.UTC()
		r.ReturnDate = &utc
	}

	r.LoanDate = r.LoanDate.UTC()
	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()

	return r, nil
}

func scanUser(rows adapters.DBRows) (recordstore.UserRecord, error) {
	var r recordstore.UserRecord

	if err := rows.Scan(&r.ID, &r.Username, &r.PasswordHash, &r.CreatedAt); err != nil {
		return r, err
	}

	r.CreatedAt = r.CreatedAt.UTC()

	return r, nil
}

func scanCount(rows adapters.DBRows) (int64, error) {
	var count int64
	err := rows.Scan(&count)

	return count, err
}
