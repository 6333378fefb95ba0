package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	headerAPIKey        = "X-API-KEY"
	headerAuthorization = "Authorization"
	bearerScheme        = "Bearer"
	tokenType           = "bearer"

	reasonMissingAPIKey      = "missing api key"
	reasonInvalidAPIKey      = "invalid api key"
	reasonMissingBearerToken = "missing bearer token"
	reasonInvalidBearerToken = "invalid bearer token"
)

var errInvalidToken = errors.New("token is not valid")

type usernameContextKey struct{}

// UsernameFrom returns the subject of the token that authenticated the request.
func UsernameFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey{}).(string)

	return username, ok
}

func isPublicPath(path string) bool {
	switch path {
	case routeRoot, routeHealth, routeMetrics, routeLogin:
		return true
	default:
		return false
	}
}

// credentialGate requires the static API key and a valid bearer token on every non-public route.
func (s *Server) credentialGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(headerAPIKey)
		if apiKey == "" {
			s.rejectUnauthorized(w, r, reasonMissingAPIKey)
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.apiKey)) != 1 {
			s.rejectUnauthorized(w, r, reasonInvalidAPIKey)
			return
		}

		scheme, token, found := strings.Cut(r.Header.Get(headerAuthorization), " ")
		if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" {
			s.rejectUnauthorized(w, r, reasonMissingBearerToken)
			return
		}

		username, err := s.validateToken(token)
		if err != nil {
			s.rejectUnauthorized(w, r, reasonInvalidBearerToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), usernameContextKey{}, username)))
	})
}

// issueToken signs an HS256 token whose subject is the username.
func (s *Server) issueToken(username string) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Server) validateToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (any, error) { return s.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", errors.Join(errInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", errInvalidToken
	}

	return claims.Subject, nil
}

func (s *Server) rejectUnauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	s.logAuthFailure(r, reason)
	writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: reason})
}

func (s *Server) logAuthFailure(r *http.Request, reason string) {
	if s.logger == nil {
		return
	}

	s.logger.WarnContext(r.Context(), logMsgAuthFailed,
		logAttrReason, reason,
		logAttrPath, r.URL.Path,
		logAttrRemote, r.RemoteAddr,
	)
}

// tokenResponse is the body of a successful login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

func (s *Server) newTokenResponse(username string) (tokenResponse, error) {
	token, err := s.issueToken(username)
	if err != nil {
		return tokenResponse{}, err
	}

	return tokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   s.now().Add(s.tokenTTL).Format(time.RFC3339),
	}, nil
}
