package authorlist

const (
	queryType = "AuthorList"
)

// Query represents the intent to list all authors with their books.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
