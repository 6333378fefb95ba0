// Package readmodel assembles the denormalized read views returned to clients:
// book views with the author's name, borrower profiles with their loan history and
// author profiles with all their books.
//
// Assembly only reads. A missing author on a book view yields a null author name, never an error.
package readmodel
