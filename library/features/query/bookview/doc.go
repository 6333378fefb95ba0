// Package bookview implements the query for a single book view.
package bookview
