package httpapi

import (
	"mime"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/library-records-go/library/features/query/authenticateuser"
)

const (
	reasonRateLimited        = "too many login attempts"
	reasonInvalidCredentials = "invalid credentials"

	maxTrackedClients = 10000
)

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     limit,
		burst:    burst,
	}
}

func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[client]
	if !exists {
		if len(l.limiters) >= maxTrackedClients {
			l.limiters = make(map[string]*rate.Limiter)
		}

		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[client] = limiter
	}

	return limiter.Allow()
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (loginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
		if err := r.ParseForm(); err != nil {
			return loginRequest{}, errInvalidRequestBody
		}

		return loginRequest{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}, nil
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return loginRequest{}, err
	}

	return req, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.allow(clientAddress(r)) {
		s.logAuthFailure(r, reasonRateLimited)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Detail: reasonRateLimited})
		return
	}

	req, err := readLoginRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.useCases.AuthenticateUser.Handle(r.Context(), authenticateuser.BuildQuery(req.Username, req.Password))
	if err != nil {
		status, _ := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.respondError(w, r, err)
			return
		}

		s.rejectUnauthorized(w, r, reasonInvalidCredentials)
		return
	}

	response, err := s.newTokenResponse(user.Username)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
