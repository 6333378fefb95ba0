// Package borrowerloanhistory implements the query for the full loan history of a borrower.
package borrowerloanhistory
