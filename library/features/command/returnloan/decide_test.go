package returnloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/features/command/returnloan"
)

func Test_Decide_ActiveLoanIsReturned(t *testing.T) {
	// arrange
	loanDate := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	now := loanDate.Add(72 * time.Hour)
	loan := core.Loan{ID: uuid.New(), LoanDate: loanDate}

	// act
	returned, result := returnloan.Decide(loan, now)

	// assert
	assert.Equal(t, core.SuccessDecision(), result)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, now, *returned.ReturnDate)
	assert.Equal(t, core.LoanStatusReturned, returned.Status())
}

func Test_Decide_ReturnedLoanIsIdempotent(t *testing.T) {
	// arrange
	loanDate := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	firstReturn := loanDate.Add(time.Hour)
	loan := core.Loan{ID: uuid.New(), LoanDate: loanDate, ReturnDate: &firstReturn}

	// act
	unchanged, result := returnloan.Decide(loan, loanDate.Add(48*time.Hour))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Equal(t, loan, unchanged)
}

func Test_Decide_FutureDatedLoanIsReturnedAtItsLoanDate(t *testing.T) {
	// arrange
	loanDate := time.Date(2030, time.January, 10, 0, 0, 0, 0, time.UTC)
	loan := core.Loan{ID: uuid.New(), LoanDate: loanDate}

	// act
	returned, _ := returnloan.Decide(loan, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	// assert
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, loanDate, *returned.ReturnDate)
}
