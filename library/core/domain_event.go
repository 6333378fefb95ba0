package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuthorAggregateType   AggregateTypeString = "author"
	BookAggregateType     AggregateTypeString = "book"
	BorrowerAggregateType AggregateTypeString = "borrower"
	LoanAggregateType     AggregateTypeString = "loan"
)

const (
	AuthorCreatedEventType   EventTypeString = "author.created"
	AuthorUpdatedEventType   EventTypeString = "author.updated"
	AuthorDeletedEventType   EventTypeString = "author.deleted"
	BookCreatedEventType     EventTypeString = "book.created"
	BookUpdatedEventType     EventTypeString = "book.updated"
	BookDeletedEventType     EventTypeString = "book.deleted"
	BorrowerCreatedEventType EventTypeString = "borrower.created"
	BorrowerUpdatedEventType EventTypeString = "borrower.updated"
	BorrowerDeletedEventType EventTypeString = "borrower.deleted"
	LoanCreatedEventType     EventTypeString = "loan.created"
	LoanReturnedEventType    EventTypeString = "loan.returned"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent is the immutable record of a completed state change.
// Data carries the serialized entity, or only its id for deletions.
type DomainEvent struct {
	EventID       uuid.UUID           `json:"event_id"`
	EventType     EventTypeString     `json:"event_type"`
	OccurredAt    Timestamp           `json:"occurred_at"`
	AggregateType AggregateTypeString `json:"aggregate_type"`
	AggregateID   uuid.UUID           `json:"aggregate_id"`
	Data          any                 `json:"data"`
}

// DeletedData is the payload of all *.deleted events.
type DeletedData struct {
	ID uuid.UUID `json:"id"`
}

// IsEventType returns the event type identifier.
func (e DomainEvent) IsEventType() string {
	return e.EventType
}

// HasOccurredAt returns when this event occurred.
func (e DomainEvent) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func buildDomainEvent(
	eventType EventTypeString,
	aggregateType AggregateTypeString,
	aggregateID uuid.UUID,
	data any,
	occurredAt time.Time,
) DomainEvent {

	return DomainEvent{
		EventID:       uuid.New(),
		EventType:     eventType,
		OccurredAt:    ToTimestamp(occurredAt),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Data:          data,
	}
}

// BuildLoanCreated creates a new loan.created event.
func BuildLoanCreated(loan Loan, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(LoanCreatedEventType, LoanAggregateType, loan.ID, loan, occurredAt)
}

// BuildLoanReturned creates a new loan.returned event.
func BuildLoanReturned(loan Loan, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(LoanReturnedEventType, LoanAggregateType, loan.ID, loan, occurredAt)
}

// BuildAuthorCreated creates a new author.created event.
func BuildAuthorCreated(author Author, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(AuthorCreatedEventType, AuthorAggregateType, author.ID, author, occurredAt)
}

// BuildAuthorUpdated creates a new author.updated event.
func BuildAuthorUpdated(author Author, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(AuthorUpdatedEventType, AuthorAggregateType, author.ID, author, occurredAt)
}

// BuildAuthorDeleted creates a new author.deleted event.
func BuildAuthorDeleted(authorID uuid.UUID, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(AuthorDeletedEventType, AuthorAggregateType, authorID, DeletedData{ID: authorID}, occurredAt)
}

// BuildBookCreated creates a new book.created event.
func BuildBookCreated(book Book, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BookCreatedEventType, BookAggregateType, book.ID, book, occurredAt)
}

// BuildBookUpdated creates a new book.updated event.
func BuildBookUpdated(book Book, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BookUpdatedEventType, BookAggregateType, book.ID, book, occurredAt)
}

// BuildBookDeleted creates a new book.deleted event.
func BuildBookDeleted(bookID uuid.UUID, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BookDeletedEventType, BookAggregateType, bookID, DeletedData{ID: bookID}, occurredAt)
}

// BuildBorrowerCreated creates a new borrower.created event.
func BuildBorrowerCreated(borrower Borrower, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BorrowerCreatedEventType, BorrowerAggregateType, borrower.ID, borrower, occurredAt)
}

// BuildBorrowerUpdated creates a new borrower.updated event.
func BuildBorrowerUpdated(borrower Borrower, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BorrowerUpdatedEventType, BorrowerAggregateType, borrower.ID, borrower, occurredAt)
}

// BuildBorrowerDeleted creates a new borrower.deleted event.
func BuildBorrowerDeleted(borrowerID uuid.UUID, occurredAt time.Time) DomainEvent {
	return buildDomainEvent(BorrowerDeletedEventType, BorrowerAggregateType, borrowerID, DeletedData{ID: borrowerID}, occurredAt)
}
