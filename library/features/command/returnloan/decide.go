package returnloan

import (
	"time"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide implements the business logic to determine whether a loan has to be returned.
// This is a pure function, it returns the loan as it should be persisted.
//
// Business Rules:
//
//	GIVEN: An existing loan
//	WHEN: ReturnLoan command is received
//	THEN: the return date is set to now and a loan.returned event is staged
//	IDEMPOTENCY: If the loan is already returned, it stays unchanged and no event is staged
func Decide(loan core.Loan, now time.Time) (core.Loan, core.DecisionResult) {
	returned, changed := loan.Return(now)
	if !changed {
		return loan, core.IdempotentDecision()
	}

	return returned, core.SuccessDecision()
}
