// Package booklist implements the query for all book views.
package booklist
