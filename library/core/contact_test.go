package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

func Test_NormalizePhone(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		valid    bool
	}{
		{"+14155551234", "+14155551234", true},
		{"+1 (415) 555-1234", "+14155551234", true},
		{"+49 30 1234567", "+49301234567", true},
		{"14155551234", "", false},
		{"+04155551234", "", false},
		{"+1", "", false},
		{"+1234567890123456", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			phone, err := core.NormalizePhone(tt.raw)

			if !tt.valid {
				assert.ErrorIs(t, err, core.ErrInvalidPhone)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, phone)
		})
	}
}

func Test_NormalizeEmail(t *testing.T) {
	email, err := core.NormalizeEmail("  reader@example.com ")
	assert.NoError(t, err)
	assert.Equal(t, "reader@example.com", email)

	for _, raw := range []string{"", "no-at-sign", "Reader <reader@example.com>"} {
		_, err = core.NormalizeEmail(raw)
		assert.ErrorIs(t, err, core.ErrInvalidEmail, raw)
	}
}
