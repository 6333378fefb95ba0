package shell

import (
	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Mapping between persisted records and core entities. Timestamps are normalized on the way in.

func AuthorFromRecord(r recordstore.AuthorRecord) core.Author {
	return core.Author{
		ID:        r.ID,
		Name:      r.Name,
		Bio:       r.Bio,
		CreatedAt: core.ToTimestamp(r.CreatedAt),
		UpdatedAt: core.ToTimestamp(r.UpdatedAt),
	}
}

func AuthorToRecord(a core.Author) recordstore.AuthorRecord {
	return recordstore.AuthorRecord{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func BookFromRecord(r recordstore.BookRecord) core.Book {
	return core.Book{
		ID:            r.ID,
		Title:         r.Title,
		ISBN:          r.ISBN,
		PublishedDate: r.PublishedDate.UTC(),
		AuthorID:      r.AuthorID,
		CreatedAt:     core.ToTimestamp(r.CreatedAt),
		UpdatedAt:     core.ToTimestamp(r.UpdatedAt),
	}
}

func BookToRecord(b core.Book) recordstore.BookRecord {
	return recordstore.BookRecord{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate,
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func BorrowerFromRecord(r recordstore.BorrowerRecord) core.Borrower {
	return core.Borrower{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: core.ToTimestamp(r.CreatedAt),
		UpdatedAt: core.ToTimestamp(r.UpdatedAt),
	}
}

func BorrowerToRecord(b core.Borrower) recordstore.BorrowerRecord {
	return recordstore.BorrowerRecord{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func LoanFromRecord(r recordstore.LoanRecord) core.Loan {
	loan := core.Loan{
		ID:         r.ID,
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		LoanDate:   core.ToTimestamp(r.LoanDate),
		CreatedAt:  core.ToTimestamp(r.CreatedAt),
		UpdatedAt:  core.ToTimestamp(r.UpdatedAt),
	}

	if r.ReturnDate != nil {
		returnDate := core.ToTimestamp(*r.ReturnDate)
		loan.ReturnDate = &returnDate
	}

	return loan
}

func LoanToRecord(l core.Loan) recordstore.LoanRecord {
	return recordstore.LoanRecord{
		ID:         l.ID,
		BookID:     l.BookID,
		BorrowerID: l.BorrowerID,
		LoanDate:   l.LoanDate,
		ReturnDate: l.ReturnDate,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func LoansFromRecords(records []recordstore.LoanRecord) []core.Loan {
	loans := make([]core.Loan, 0, len(records))
	for _, r := range records {
		loans = append(loans, LoanFromRecord(r))
	}

	return loans
}

func UserFromRecord(r recordstore.UserRecord) core.User {
	return core.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    core.ToTimestamp(r.CreatedAt),
	}
}
