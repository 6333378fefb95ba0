// Package updateborrower implements the partial update of a borrower.
package updateborrower
