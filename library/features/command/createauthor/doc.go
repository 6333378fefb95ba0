// Package createauthor implements the Create Author use case.
package createauthor
