package borrowerprofile

import (
	"github.com/google/uuid"
)

const (
	queryType = "BorrowerProfile"
)

// Query represents the intent to read a borrower together with all of their loans.
type Query struct {
	BorrowerID uuid.UUID
}

// BuildQuery creates a new Query with the provided borrower ID.
func BuildQuery(borrowerID uuid.UUID) Query {
	return Query{BorrowerID: borrowerID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
