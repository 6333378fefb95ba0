// Package createborrower implements the Create Borrower use case.
//
// Phone numbers are normalized to E.164 by stripping everything but digits and '+'.
// A second borrower with the same email fails with core.ErrEmailAlreadyExists.
package createborrower
