// Package returnloan implements the Return Loan use case.
//
// Returning moves a loan from ACTIVE to RETURNED, which is terminal. Returning a loan twice is a no-op
// that keeps the first return date and stages no second loan.returned event.
package returnloan
