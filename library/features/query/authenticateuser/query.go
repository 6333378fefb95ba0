package authenticateuser

const (
	queryType = "AuthenticateUser"
)

// Query represents a login attempt.
type Query struct {
	Username string
	Password string
}

// BuildQuery creates a new Query with the provided credentials.
func BuildQuery(username string, password string) Query {
	return Query{Username: username, Password: password}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
