package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/features/command/createbook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/deletebook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-records-go/library/features/query/booklist"
	"github.com/AntonStoeckl/library-records-go/library/features/query/bookview"
)

type createBookRequest struct {
	Title         string    `json:"title"`
	ISBN          string    `json:"isbn"`
	PublishedDate string    `json:"published_date"`
	AuthorID      uuid.UUID `json:"author_id"`
}

type updateBookRequest struct {
	Title         *string    `json:"title"`
	ISBN          *string    `json:"isbn"`
	PublishedDate *string    `json:"published_date"`
	AuthorID      *uuid.UUID `json:"author_id"`
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.useCases.BookList.Handle(r.Context(), booklist.BuildQuery())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := requireID("author_id", req.AuthorID); err != nil {
		s.respondError(w, r, err)
		return
	}

	command := createbook.BuildCommand(req.Title, req.ISBN, req.PublishedDate, req.AuthorID)

	result, err := s.useCases.CreateBook.Handle(r.Context(), command)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result.Value)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	view, err := s.useCases.BookView.Handle(r.Context(), bookview.BuildQuery(bookID))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req updateBookRequest
	if err = decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	command := updatebook.BuildCommand(bookID, req.Title, req.ISBN, req.PublishedDate, req.AuthorID)

	result, err := s.useCases.UpdateBook.Handle(r.Context(), command)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Value)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, err = s.useCases.DeleteBook.Handle(r.Context(), deletebook.BuildCommand(bookID)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
