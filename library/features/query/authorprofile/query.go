package authorprofile

import (
	"github.com/google/uuid"
)

const (
	queryType = "AuthorProfile"
)

// Query represents the intent to read an author together with all of their books.
type Query struct {
	AuthorID uuid.UUID
}

// BuildQuery creates a new Query with the provided author ID.
func BuildQuery(authorID uuid.UUID) Query {
	return Query{AuthorID: authorID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
