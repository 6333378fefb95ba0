// Package updateauthor implements the partial update of an author.
package updateauthor
