// Package createloan implements the Create Loan use case.
//
// A loan ties one book to one borrower. Both must exist and the book must not be on an active loan.
// The active loan check runs inside the unit of work and is backed by the store's one active loan
// per book constraint, so concurrent requests for the same book yield at most one loan.
//
// Loan dates accept ISO-8601 and DD-MM-YYYY. A missing or unreadable loan date means now, an unreadable
// return date or one before the loan date is a validation error.
package createloan
