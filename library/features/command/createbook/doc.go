// Package createbook implements the Create Book use case.
//
// The book's author must exist when the book is created. The handler answers with the book view,
// which carries the author's name next to the book fields.
package createbook
