package core

import (
	"net/mail"
	"regexp"
	"strings"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// NormalizePhone strips everything but digits and '+' and validates the result as E.164.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder

	for _, r := range raw {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	phone := b.String()
	if !e164Pattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	return phone, nil
}

// NormalizeEmail trims an address after checking that it parses as a bare address.
func NormalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	address, err := mail.ParseAddress(trimmed)
	if err != nil || address.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return trimmed, nil
}
