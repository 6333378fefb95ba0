package core

import (
	"strings"
	"time"
)

// acceptedLayouts are tried in order. Layouts without a zone are read as UTC.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	"02-01-2006",
}

// ParseTimestamp parses ISO-8601 dates and timestamps as well as DD-MM-YYYY.
func ParseTimestamp(value string) (Timestamp, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, false
	}

	for _, layout := range acceptedLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ToTimestamp(parsed), true
		}
	}

	return Timestamp{}, false
}

// ResolveLoanDates turns the optional raw dates of a loan request into canonical timestamps.
//
// An absent or unparsable loan date falls back to now. An absent return date yields nil,
// an unparsable one fails with ErrInvalidReturnDate, and one before the loan date fails with
// ErrReturnBeforeLoan.
func ResolveLoanDates(rawLoanDate string, rawReturnDate string, now time.Time) (Timestamp, *Timestamp, error) {
	loanDate, ok := ParseTimestamp(rawLoanDate)
	if !ok {
		loanDate = ToTimestamp(now)
	}

	if strings.TrimSpace(rawReturnDate) == "" {
		return loanDate, nil, nil
	}

	returnDate, ok := ParseTimestamp(rawReturnDate)
	if !ok {
		return loanDate, nil, ErrInvalidReturnDate
	}

	if returnDate.Before(loanDate) {
		return loanDate, nil, ErrReturnBeforeLoan
	}

	return loanDate, &returnDate, nil
}

// ParseDate parses a calendar date, dropping any time of day.
func ParseDate(value string) (time.Time, error) {
	parsed, ok := ParseTimestamp(value)
	if !ok {
		return time.Time{}, ErrInvalidPublishedDate
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}
