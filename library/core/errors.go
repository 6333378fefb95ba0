package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by all aggregate-specific not found errors.
var ErrNotFound = errors.New("not found")

var (
	ErrAuthorNotFound   = fmt.Errorf("author %w", ErrNotFound)
	ErrBookNotFound     = fmt.Errorf("book %w", ErrNotFound)
	ErrBorrowerNotFound = fmt.Errorf("borrower %w", ErrNotFound)
	ErrLoanNotFound     = fmt.Errorf("loan %w", ErrNotFound)
)

// ErrAlreadyBorrowed is returned when a loan is requested for a book that has an active loan.
var ErrAlreadyBorrowed = errors.New("book is already borrowed")

// ErrActiveLoanExists is returned when a book or borrower with an active loan should be deleted.
var ErrActiveLoanExists = errors.New("an active loan exists")

// ErrEmailAlreadyExists is returned when a borrower email is already taken.
var ErrEmailAlreadyExists = errors.New("email already exists")

// ErrAuthorHasBooks is returned when an author that is still referenced by books should be deleted.
var ErrAuthorHasBooks = errors.New("author has books")

// ErrValidation is wrapped by all input validation errors.
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingName          = fmt.Errorf("%w: name is required", ErrValidation)
	ErrMissingTitle         = fmt.Errorf("%w: title is required", ErrValidation)
	ErrMissingISBN          = fmt.Errorf("%w: isbn is required", ErrValidation)
	ErrInvalidPublishedDate = fmt.Errorf("%w: published date is not a valid date", ErrValidation)
	ErrInvalidEmail         = fmt.Errorf("%w: email is not a valid address", ErrValidation)
	ErrInvalidPhone         = fmt.Errorf("%w: phone is not a valid E.164 number", ErrValidation)
	ErrInvalidReturnDate    = fmt.Errorf("%w: return date is not a valid date", ErrValidation)
	ErrReturnBeforeLoan     = fmt.Errorf("%w: return date is before loan date", ErrValidation)
	ErrMissingCredentials   = fmt.Errorf("%w: username and password are required", ErrValidation)
)

// ErrUsernameAlreadyExists is returned when a user with the same username is already registered.
var ErrUsernameAlreadyExists = errors.New("username already exists")

// ErrInvalidCredentials is returned when a username and password pair does not match a stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")
