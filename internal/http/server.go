// Package http exposes the dashboard over a JSON API: derived views,
// overdue reports, CSV export, manual refresh and per-session preferences.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"financas/internal/services"
	"financas/internal/storage"
)

type Server struct {
	addr       string
	svc        *services.DashboardService
	prefs      *storage.PreferenceStore
	limiter    *rateLimiter
	httpServer *http.Server
}

// NewServer wires the dashboard service and preference store into the HTTP
// API. prefs may be nil, in which case the preference endpoints answer 503.
func NewServer(addr string, svc *services.DashboardService, prefs *storage.PreferenceStore) *Server {
	s := &Server{
		addr:    addr,
		svc:     svc,
		prefs:   prefs,
		limiter: newRateLimiter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/dashboard", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("/api/dashboard/overdue", s.withSecurityHeaders(s.handleOverdue))
	mux.HandleFunc("/api/export.csv", s.withSecurityHeaders(s.handleExportCSV))
	mux.HandleFunc("/api/refresh", s.withSecurityHeaders(s.handleRefresh))
	mux.HandleFunc("/api/columns", s.withSecurityHeaders(s.handleColumns))
	mux.HandleFunc("/api/preferences/", s.withSecurityHeaders(s.handlePreferences))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           traceMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the fully wired handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
