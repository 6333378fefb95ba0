package readmodel_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/readmodel"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/memengine"
)

type fixture struct {
	author   core.Author
	books    []core.Book
	borrower core.Borrower
}

func givenLibrary(t *testing.T, uow recordstore.UnitOfWork) fixture {
	t.Helper()
	ctx := context.Background()

	author, err := uow.Authors().Create(ctx, recordstore.AuthorRecord{Name: "A. Poe"})
	require.NoError(t, err)

	f := fixture{author: shell.AuthorFromRecord(author)}

	for _, title := range []string{"Tales", "The Raven"} {
		book, createErr := uow.Books().Create(ctx, recordstore.BookRecord{
			Title:         title,
			ISBN:          "isbn-" + title,
			PublishedDate: time.Date(1845, 1, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:      author.ID,
		})
		require.NoError(t, createErr)
		f.books = append(f.books, shell.BookFromRecord(book))
	}

	borrower, err := uow.Borrowers().Create(ctx, recordstore.BorrowerRecord{Name: "B", Email: "b@example.com", Phone: "+15551234567"})
	require.NoError(t, err)
	f.borrower = shell.BorrowerFromRecord(borrower)

	return f
}

func Test_AssembleBookView_ResolvesAuthorName(t *testing.T) {
	// arrange
	uow, err := memengine.NewEngine().Begin(context.Background())
	require.NoError(t, err)
	f := givenLibrary(t, uow)

	// act
	view, err := readmodel.AssembleBookView(context.Background(), uow, f.books[0])

	// assert
	require.NoError(t, err)
	require.NotNil(t, view.AuthorName)
	assert.Equal(t, "A. Poe", *view.AuthorName)
	assert.Equal(t, "Tales", view.Title)
}

func Test_AssembleBookView_MissingAuthorYieldsNullName(t *testing.T) {
	// arrange
	uow, err := memengine.NewEngine().Begin(context.Background())
	require.NoError(t, err)
	orphan := core.Book{ID: uuid.New(), Title: "Orphan", AuthorID: uuid.New()}

	// act
	view, err := readmodel.AssembleBookView(context.Background(), uow, orphan)

	// assert
	require.NoError(t, err)
	assert.Nil(t, view.AuthorName)

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"author_name":null`)
	assert.Contains(t, string(raw), `"title":"Orphan"`)
}

func Test_AssembleBorrowerProfile_ContainsFullLoanHistory(t *testing.T) {
	// arrange
	ctx := context.Background()
	uow, err := memengine.NewEngine().Begin(ctx)
	require.NoError(t, err)
	f := givenLibrary(t, uow)

	loanDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnDate := loanDate.Add(24 * time.Hour)
	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.books[0].ID, BorrowerID: f.borrower.ID, LoanDate: loanDate, ReturnDate: &returnDate})
	require.NoError(t, err)
	_, err = uow.Loans().Create(ctx, recordstore.LoanRecord{BookID: f.books[1].ID, BorrowerID: f.borrower.ID, LoanDate: loanDate})
	require.NoError(t, err)

	// act
	profile, err := readmodel.AssembleBorrowerProfile(ctx, uow, f.borrower)

	// assert
	require.NoError(t, err)
	assert.Equal(t, f.borrower.Email, profile.Email)
	require.Len(t, profile.Loans, 2)
	assert.Equal(t, core.LoanStatusReturned, profile.Loans[0].Status())
	assert.Equal(t, core.LoanStatusActive, profile.Loans[1].Status())
}

func Test_AssembleAuthorProfile_AnnotatesBooksWithAuthorName(t *testing.T) {
	// arrange
	uow, err := memengine.NewEngine().Begin(context.Background())
	require.NoError(t, err)
	f := givenLibrary(t, uow)

	// act
	profiles, err := readmodel.AssembleAuthorProfiles(context.Background(), uow, []core.Author{f.author})

	// assert
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Len(t, profiles[0].Books, 2)
	for _, book := range profiles[0].Books {
		assert.Equal(t, "A. Poe", *book.AuthorName)
	}

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(profiles[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"A. Poe"`)
	assert.Contains(t, string(raw), `"books":[`)
}
