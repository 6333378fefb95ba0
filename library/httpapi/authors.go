package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-records-go/library/features/command/createauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deleteauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updateauthor"
	"github.com/AntonStoeckl/library-records-go/library/features/query/authorlist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/authorprofile"
)

type createAuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

type updateAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.useCases.AuthorList.Handle(r.Context(), authorlist.BuildQuery())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authors)
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.useCases.CreateAuthor.Handle(r.Context(), createauthor.BuildCommand(req.Name, req.Bio))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result.Value)
}

func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	profile, err := s.useCases.AuthorProfile.Handle(r.Context(), authorprofile.BuildQuery(authorID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req updateAuthorRequest
	if err = decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.useCases.UpdateAuthor.Handle(r.Context(), updateauthor.BuildCommand(authorID, req.Name, req.Bio))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Value)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, err = s.useCases.DeleteAuthor.Handle(r.Context(), deleteauthor.BuildCommand(authorID)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
