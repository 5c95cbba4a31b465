package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"mobilewash/internal/config"
	"mobilewash/internal/domain"
	"mobilewash/internal/metrics"
	"mobilewash/internal/service"
	"mobilewash/internal/store"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the public booking API and the admin API on one port.
// Admin endpoints sit behind API-key auth; public write endpoints share a
// per-client rate limit backed by the session repository.
type HTTPServer struct {
	cfg      *config.Config
	store    domain.Store
	flow     *service.BookingFlow
	admin    *service.AdminService
	sessions domain.SessionRepository
	logger   *zerolog.Logger
	server   *http.Server
	auth     *HTTPAuth
}

func NewHTTPServer(
	cfg *config.Config,
	st domain.Store,
	flow *service.BookingFlow,
	admin *service.AdminService,
	sessions domain.SessionRepository,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		store:    st,
		flow:     flow,
		admin:    admin,
		sessions: sessions,
		logger:   logger,
	}
	srv.auth = NewHTTPAuth(cfg.Admin)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/packages", srv.handlePackages)
	mux.HandleFunc("/api/v1/calendar", srv.handleCalendar)
	mux.HandleFunc("/api/v1/slots", srv.handleSlots)
	mux.HandleFunc("/api/v1/bookings", srv.handleCreateBooking)
	mux.HandleFunc("/api/v1/sessions/", srv.handleSessions)
	mux.HandleFunc("/api/v1/contact", srv.handleContact)

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("/api/v1/admin/bookings", srv.handleAdminBookings)
	adminMux.HandleFunc("/api/v1/admin/bookings/", srv.handleAdminBooking)
	adminMux.HandleFunc("/api/v1/admin/stats", srv.handleAdminStats)
	adminMux.HandleFunc("/api/v1/admin/export", srv.handleAdminExport)
	mux.Handle("/api/v1/admin/", srv.auth.Wrap(adminMux))

	handler := srv.loggingMiddleware(mux)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return errors.New("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(endpointLabel(r.URL.Path))
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel collapses path parameters so the metric cardinality stays
// bounded by the route table, not by booking and session IDs.
func endpointLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/sessions/"):
		rest := strings.TrimPrefix(path, "/api/v1/sessions/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/v1/sessions/{id}/" + rest[i+1:]
		}
		return "/api/v1/sessions/{id}"
	case strings.HasPrefix(path, "/api/v1/admin/bookings/"):
		rest := strings.TrimPrefix(path, "/api/v1/admin/bookings/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/v1/admin/bookings/{id}/" + rest[i+1:]
		}
		return "/api/v1/admin/bookings/{id}"
	default:
		return path
	}
}

// checkPublicRateLimit guards the public write endpoints. Counting lives in
// the session repository so the limit survives across instances when Redis
// is up.
func (s *HTTPServer) checkPublicRateLimit(r *http.Request) (bool, error) {
	limit := s.cfg.Booking.RateLimitRequests
	if limit <= 0 {
		return true, nil
	}
	window := time.Duration(s.cfg.Booking.RateLimitWindow) * time.Second
	return s.sessions.CheckRateLimit(r.Context(), clientIP(r), limit, window)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeServiceError maps domain errors onto HTTP status codes. Validation
// failures carry the per-field messages in the body.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
	case errors.Is(err, store.ErrBookingNotFound),
		errors.Is(err, store.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrIncompleteSelection),
		errors.Is(err, service.ErrDateUnavailable),
		errors.Is(err, service.ErrUnknownSlot),
		errors.Is(err, service.ErrUnknownStatusFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
