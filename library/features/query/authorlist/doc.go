// Package authorlist implements the query for all authors, each with their books.
package authorlist
