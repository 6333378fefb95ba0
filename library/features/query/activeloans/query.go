package activeloans

const (
	queryType = "ActiveLoans"
)

// Query represents the intent to list all loans that have not been returned.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
