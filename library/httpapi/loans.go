package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-records-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-records-go/library/features/query/activeloans"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerloanhistory"
)

type createLoanRequest struct {
	BookID     uuid.UUID `json:"book_id"`
	BorrowerID uuid.UUID `json:"borrower_id"`
	LoanDate   string    `json:"loan_date"`
	ReturnDate string    `json:"return_date"`
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := requireID("book_id", req.BookID); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := requireID("borrower_id", req.BorrowerID); err != nil {
		s.respondError(w, r, err)
		return
	}

	command := createloan.BuildCommand(req.BookID, req.BorrowerID, req.LoanDate, req.ReturnDate)

	result, err := s.useCases.CreateLoan.Handle(r.Context(), command)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result.Value)
}

func (s *Server) handleReturnLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.useCases.ReturnLoan.Handle(r.Context(), returnloan.BuildCommand(loanID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Value)
}

func (s *Server) handleActiveLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.useCases.ActiveLoans.Handle(r.Context(), activeloans.BuildQuery())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loans)
}

func (s *Server) handleBorrowerLoanHistory(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	loans, err := s.useCases.BorrowerLoanHistory.Handle(r.Context(), borrowerloanhistory.BuildQuery(borrowerID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loans)
}
