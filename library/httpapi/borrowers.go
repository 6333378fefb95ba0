package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-records-go/library/features/command/createborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deleteborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateborrower"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerdetails"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerlist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/borrowerprofile"
)

type createBorrowerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type updateBorrowerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (s *Server) handleListBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := s.useCases.BorrowerList.Handle(r.Context(), borrowerlist.BuildQuery())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, borrowers)
}

func (s *Server) handleCreateBorrower(w http.ResponseWriter, r *http.Request) {
	var req createBorrowerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.useCases.CreateBorrower.Handle(r.Context(), createborrower.BuildCommand(req.Name, req.Email, req.Phone))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result.Value)
}

func (s *Server) handleGetBorrower(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	borrower, err := s.useCases.BorrowerDetails.Handle(r.Context(), borrowerdetails.BuildQuery(borrowerID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, borrower)
}

func (s *Server) handleUpdateBorrower(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req updateBorrowerRequest
	if err = decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	command := updateborrower.BuildCommand(borrowerID, req.Name, req.Email, req.Phone)

	result, err := s.useCases.UpdateBorrower.Handle(r.Context(), command)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Value)
}

func (s *Server) handleDeleteBorrower(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, err = s.useCases.DeleteBorrower.Handle(r.Context(), deleteborrower.BuildCommand(borrowerID)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBorrowerProfile(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	profile, err := s.useCases.BorrowerProfile.Handle(r.Context(), borrowerprofile.BuildQuery(borrowerID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
