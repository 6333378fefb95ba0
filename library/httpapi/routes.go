package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

const (
	routeRoot     = "/"
	routeHealth   = "/healthz"
	routeMetrics  = "/metrics"
	routeLogin    = "/login"
	welcomeDetail = "Welcome to the library records service"
)

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.correlationMiddleware, s.metricsMiddleware, s.credentialGate)

	router.HandleFunc(routeRoot, s.handleWelcome).Methods(http.MethodGet)
	router.HandleFunc(routeHealth, s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc(routeLogin, s.handleLogin).Methods(http.MethodPost)

	if s.metricsHandler != nil {
		router.Handle(routeMetrics, s.metricsHandler).Methods(http.MethodGet)
	}

	loans := router.PathPrefix("/loans").Subrouter()
	loans.HandleFunc("", s.handleCreateLoan).Methods(http.MethodPost)
	loans.HandleFunc("/active", s.handleActiveLoans).Methods(http.MethodGet)
	loans.HandleFunc("/history/borrower/{id}", s.handleBorrowerLoanHistory).Methods(http.MethodGet)
	loans.HandleFunc("/{id}/return", s.handleReturnLoan).Methods(http.MethodPut)

	books := router.PathPrefix("/books").Subrouter()
	books.HandleFunc("", s.handleListBooks).Methods(http.MethodGet)
	books.HandleFunc("", s.handleCreateBook).Methods(http.MethodPost)
	books.HandleFunc("/{id}", s.handleGetBook).Methods(http.MethodGet)
	books.HandleFunc("/{id}", s.handleUpdateBook).Methods(http.MethodPut)
	books.HandleFunc("/{id}", s.handleDeleteBook).Methods(http.MethodDelete)

	borrowers := router.PathPrefix("/borrowers").Subrouter()
	borrowers.HandleFunc("", s.handleListBorrowers).Methods(http.MethodGet)
	borrowers.HandleFunc("", s.handleCreateBorrower).Methods(http.MethodPost)
	borrowers.HandleFunc("/{id}", s.handleGetBorrower).Methods(http.MethodGet)
	borrowers.HandleFunc("/{id}", s.handleUpdateBorrower).Methods(http.MethodPut)
	borrowers.HandleFunc("/{id}", s.handleDeleteBorrower).Methods(http.MethodDelete)
	borrowers.HandleFunc("/{id}/loans", s.handleBorrowerProfile).Methods(http.MethodGet)

	authors := router.PathPrefix("/authors").Subrouter()
	authors.HandleFunc("", s.handleListAuthors).Methods(http.MethodGet)
	authors.HandleFunc("", s.handleCreateAuthor).Methods(http.MethodPost)
	authors.HandleFunc("/{id}", s.handleGetAuthor).Methods(http.MethodGet)
	authors.HandleFunc("/{id}", s.handleUpdateAuthor).Methods(http.MethodPut)
	authors.HandleFunc("/{id}", s.handleDeleteAuthor).Methods(http.MethodDelete)

	return router
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeDetail})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
