// Package deleteborrower implements the Delete Borrower use case.
//
// A borrower with any active loan cannot be deleted, the request fails with core.ErrActiveLoanExists.
package deleteborrower
