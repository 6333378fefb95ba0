// Package deletebook implements the Delete Book use case.
//
// A book on an active loan cannot be deleted, the request fails with core.ErrActiveLoanExists.
package deletebook
