// Package borrowerprofile implements the query for a borrower with their loan history.
package borrowerprofile
