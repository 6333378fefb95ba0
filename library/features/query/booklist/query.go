package booklist

const (
	queryType = "BookList"
)

// Query represents the intent to list all books with their authors' names.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
