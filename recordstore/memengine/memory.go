package memengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

type state struct {
	authors   collection[recordstore.AuthorRecord]
	books     collection[recordstore.BookRecord]
	borrowers collection[recordstore.BorrowerRecord]
	loans     collection[recordstore.LoanRecord]
	users     collection[recordstore.UserRecord]
}

func newState() state {
	return state{
		authors:   newCollection[recordstore.AuthorRecord](),
		books:     newCollection[recordstore.BookRecord](),
		borrowers: newCollection[recordstore.BorrowerRecord](),
		loans:     newCollection[recordstore.LoanRecord](),
		users:     newCollection[recordstore.UserRecord](),
	}
}

func (s state) clone() state {
	return state{
		authors:   s.authors.clone(),
		books:     s.books.clone(),
		borrowers: s.borrowers.clone(),
		loans:     s.loans.clone(),
		users:     s.users.clone(),
	}
}

// Engine is an in-memory recordstore.Engine, safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	state   state
	version uint64
	clock   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of created_at and updated_at.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates an empty in-memory Engine.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		state: newState(),
		clock: time.Now,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// Begin takes a snapshot of the store for a new unit of work.
func (e *Engine) Begin(ctx context.Context) (recordstore.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(recordstore.ErrBeginningUnitOfWorkFailed, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return &unitOfWork{
		engine:      e,
		baseVersion: e.version,
		state:       e.state.clone(),
	}, nil
}

func (e *Engine) now() time.Time {
	return e.clock().UTC().Truncate(time.Microsecond)
}

type unitOfWork struct {
	engine      *Engine
	baseVersion uint64
	state       state
	dirty       bool
	closed      bool
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

// Commit publishes the snapshot. Read-only units of work always commit.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.closed {
		return recordstore.ErrUnitOfWorkClosed
	}

	u.closed = true

	if err := ctx.Err(); err != nil {
		return errors.Join(recordstore.ErrCommittingUnitOfWorkFailed, err)
	}

	if !u.dirty {
		return nil
	}

	u.engine.mu.Lock()
	defer u.engine.mu.Unlock()

	if u.engine.version != u.baseVersion {
		return errors.Join(recordstore.ErrCommittingUnitOfWorkFailed, recordstore.ErrSerializationConflict)
	}

	u.engine.state = u.state
	u.engine.version++

	return nil
}

// Rollback discards the snapshot.
func (u *unitOfWork) Rollback(_ context.Context) error {
	u.closed = true
	return nil
}

// access guards every store call.
func (u *unitOfWork) access(ctx context.Context) error {
	if u.closed {
		return recordstore.ErrUnitOfWorkClosed
	}

	return ctx.Err()
}

func (u *unitOfWork) write(ctx context.Context) error {
	if err := u.access(ctx); err != nil {
		return err
	}

	u.dirty = true

	return nil
}

func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

var _ recordstore.Engine = (*Engine)(nil)
