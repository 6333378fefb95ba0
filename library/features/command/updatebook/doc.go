// Package updatebook implements the partial update of a book. A changed author must exist.
package updatebook
