package createloan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		description string
		state       state
		expected    core.DecisionResult
	}{
		{
			description: "book and borrower exist and the book is available",
			state:       state{bookExists: true, borrowerExists: true},
			expected:    core.SuccessDecision(),
		},
		{
			description: "book does not exist",
			state:       state{borrowerExists: true},
			expected:    core.ErrorDecision(core.ErrBookNotFound),
		},
		{
			description: "borrower does not exist",
			state:       state{bookExists: true},
			expected:    core.ErrorDecision(core.ErrBorrowerNotFound),
		},
		{
			description: "book is on an active loan",
			state:       state{bookExists: true, borrowerExists: true, bookHasActiveLoan: true},
			expected:    core.ErrorDecision(core.ErrAlreadyBorrowed),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := Decide(tc.state)

			// assert
			assert.Equal(t, tc.expected, result)
		})
	}
}
