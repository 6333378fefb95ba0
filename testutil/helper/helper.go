package helper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// FakeClock is a settable clock for handlers and engines under test.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start.UTC()}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

func GivenAuthorWasCreated(t testing.TB, ctx context.Context, engine recordstore.Engine, name string) recordstore.AuthorRecord {
	return given(t, ctx, engine, func(session recordstore.Session) (recordstore.AuthorRecord, error) {
		return session.Authors().Create(ctx, recordstore.AuthorRecord{Name: name})
	})
}

func GivenBookWasCreated(t testing.TB, ctx context.Context, engine recordstore.Engine, authorID uuid.UUID, title string) recordstore.BookRecord {
	return given(t, ctx, engine, func(session recordstore.Session) (recordstore.BookRecord, error) {
		return session.Books().Create(ctx, recordstore.BookRecord{
			Title:         title,
			ISBN:          "978-" + uuid.NewString()[:10],
			PublishedDate: time.Date(1845, time.January, 29, 0, 0, 0, 0, time.UTC),
			AuthorID:      authorID,
		})
	})
}

func GivenBorrowerWasCreated(t testing.TB, ctx context.Context, engine recordstore.Engine, name string, email string) recordstore.BorrowerRecord {
	return given(t, ctx, engine, func(session recordstore.Session) (recordstore.BorrowerRecord, error) {
		return session.Borrowers().Create(ctx, recordstore.BorrowerRecord{
			Name:  name,
			Email: email,
			Phone: "+15551234567",
		})
	})
}

func GivenLoanWasCreated(
	t testing.TB,
	ctx context.Context,
	engine recordstore.Engine,
	bookID uuid.UUID,
	borrowerID uuid.UUID,
	loanDate time.Time,
) recordstore.LoanRecord {

	return given(t, ctx, engine, func(session recordstore.Session) (recordstore.LoanRecord, error) {
		return session.Loans().Create(ctx, recordstore.LoanRecord{
			BookID:     bookID,
			BorrowerID: borrowerID,
			LoanDate:   loanDate.UTC().Truncate(time.Microsecond),
		})
	})
}

func GivenLoanWasReturned(t testing.TB, ctx context.Context, engine recordstore.Engine, loan recordstore.LoanRecord, returnDate time.Time) recordstore.LoanRecord {
	return given(t, ctx, engine, func(session recordstore.Session) (recordstore.LoanRecord, error) {
		returned := returnDate.UTC().Truncate(time.Microsecond)
		loan.ReturnDate = &returned

		return session.Loans().Update(ctx, loan)
	})
}

// given runs arrange in its own committed unit of work.
func given[T any](t testing.TB, ctx context.Context, engine recordstore.Engine, arrange func(session recordstore.Session) (T, error)) T {
	t.Helper()

	uow, err := engine.Begin(ctx)
	require.NoError(t, err, "error in arranging test data")

	defer func() { _ = uow.Rollback(ctx) }()

	record, err := arrange(uow)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, uow.Commit(ctx), "error in arranging test data")

	return record
}
