// Package activeloans implements the query for all loans that are still outstanding.
package activeloans
