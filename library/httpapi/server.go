package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/promadapters"
)

const (
	defaultTokenTTL        = time.Hour
	defaultLoginRatePerSec = 5
	defaultLoginBurst      = 5
)

// Server is the HTTP boundary: routing, the credential gate and error to status mapping.
type Server struct {
	router         *mux.Router
	useCases       UseCases
	apiKey         string
	jwtSecret      []byte
	tokenTTL       time.Duration
	loginLimiter   *clientLimiter
	clock          func() time.Time
	logger         shell.ContextualLogger
	httpMetrics    *promadapters.HTTPMetrics
	metricsHandler http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithTokenTTL sets how long issued tokens are valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) error {
		s.tokenTTL = ttl
		return nil
	}
}

// WithLoginRate limits login attempts per client and second.
func WithLoginRate(perSecond float64, burst int) Option {
	return func(s *Server) error {
		s.loginLimiter = newClientLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// WithClock replaces time.Now for token issuing and validation.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) error {
		s.clock = clock
		return nil
	}
}

// WithContextualLogger sets the logger for requests and security events.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithHTTPMetrics records request count, duration and in-flight requests per route.
func WithHTTPMetrics(metrics *promadapters.HTTPMetrics) Option {
	return func(s *Server) error {
		s.httpMetrics = metrics
		return nil
	}
}

// WithMetricsHandler serves handler, usually promhttp.Handler(), on GET /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(s *Server) error {
		s.metricsHandler = handler
		return nil
	}
}

// NewServer creates a Server. The API key and the JWT secret are required.
func NewServer(useCases UseCases, apiKey string, jwtSecret string, opts ...Option) (*Server, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if !useCases.complete() {
		return nil, ErrNilUseCase
	}

	s := &Server{
		useCases:     useCases,
		apiKey:       apiKey,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     defaultTokenTTL,
		loginLimiter: newClientLimiter(defaultLoginRatePerSec, defaultLoginBurst),
		clock:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.router = s.routes()

	return s, nil
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) now() time.Time {
	return s.clock().UTC()
}

// respondError logs and writes err with the status it maps to.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)

	if status >= http.StatusInternalServerError && s.logger != nil {
		username, _ := UsernameFrom(r.Context())

		s.logger.ErrorContext(r.Context(), logMsgRequestFailed,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrUser, username,
			logAttrError, err.Error(),
		)
	}

	writeJSON(w, status, errorResponse{Detail: detail})
}
