package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/user"
	"github.com/toyswap/toyswap/internal/infrastructure/sse"
	"github.com/toyswap/toyswap/internal/sandbox"
)

// Header names of the exchange service protocol.
const (
	headerUserID           = "x_user_id"
	headerIdempotencyToken = "x_idempotency_token"
	headerItemID           = "toy_id"
)

const maxUploadBytes = 10 << 20

// Server serves the exchange service API from an in-memory store.
type Server struct {
	store  *sandbox.Store
	faults *faults
	events *sse.Hub
	logger zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithFailFirst makes the first n mutating requests apply their change and
// then drop the connection without a response.
func WithFailFirst(n int) Option {
	return func(s *Server) {
		s.faults.arm(n)
	}
}

// NewServer creates the API server.
func NewServer(store *sandbox.Store, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		store:  store,
		faults: &faults{},
		events: sse.NewHub(),
		logger: logger.With().Str("service", "sandbox").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailFirst arms the connection-drop fault for the next n mutating requests.
func (s *Server) FailFirst(n int) {
	s.faults.arm(n)
}

// Close ends open event streams.
func (s *Server) Close() {
	s.events.Stop()
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.faults.middleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		// Event streams outlive the request timeout.
		r.With(s.requireUser).Get("/events", s.streamEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Post("/register", s.register)
			r.Post("/login", s.login)

			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)

				r.Route("/toys", func(r chi.Router) {
					r.Post("/", s.createItem)
					r.Post("/change", s.updateItem)
					r.Post("/list", s.listItems)
					r.Get("/{itemId}", s.getItem)
					r.Delete("/{itemId}", s.deleteItem)
					r.Patch("/{itemId}", s.patchItem)
				})

				r.Route("/exchange", func(r chi.Router) {
					r.Post("/", s.createExchange)
					r.Post("/list", s.listExchanges)
					r.Get("/{exchangeId}", s.getExchange)
					r.Patch("/{exchangeId}", s.patchExchange)
				})
			})
		})
	})

	r.With(middleware.Timeout(30*time.Second)).Get("/upload/*", s.getPhoto)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", headerUserID, headerIdempotencyToken, headerItemID},
	})
	return c.Handler(r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Helpers

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Code: code, Message: message})
}

// respondStoreError maps store failures onto status codes.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sandbox.ErrInvalidInput), errors.Is(err, sandbox.ErrInvalidCursor):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, sandbox.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, item.ErrNotFound), errors.Is(err, exchange.ErrNotFound), errors.Is(err, sandbox.ErrPhotoNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, item.ErrInvalidTransition), errors.Is(err, exchange.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// page is the paging part of list requests.
type page struct {
	Limit  *int    `json:"limit,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
}

func (p page) values() (int, string) {
	limit, cursor := 0, ""
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Cursor != nil {
		cursor = *p.Cursor
	}
	return limit, cursor
}

func cursorPtr(c string) *string {
	if c == "" {
		return nil
	}
	return &c
}
