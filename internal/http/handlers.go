package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financas/internal/core"
	"financas/internal/services"
	"financas/internal/storage"
)

const (
	refreshTimeout = 30 * time.Second
	sessionHeader  = "X-Session-ID"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view := s.svc.View(parseFilterState(r))
	writeJSON(w, http.StatusOK, buildDashboardResponse(view))
}

func (s *Server) handleOverdue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view := s.svc.View(parseFilterState(r))
	out := make([]overdueDTO, 0, len(view.Overdue))
	for _, rec := range view.Overdue {
		out = append(out, overdueDTO{
			recordDTO: buildRecordDTO(rec.Record),
			DaysLate:  rec.DaysLate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"overdue": out,
		"count":   len(out),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	name, body := s.svc.ExportCSV(parseFilterState(r))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !s.limiter.allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many refresh requests")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	if err := s.svc.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "Manual refresh failed", "error", err, "request_id", RequestID(ctx))
		writeError(w, http.StatusBadGateway, services.LoadErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"columns": services.TableColumns()})
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		writeError(w, http.StatusServiceUnavailable, "preference store not configured")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/preferences/")
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusNotFound, "unknown preference key")
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, sessionHeader+" header is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, err := s.prefs.Get(r.Context(), sessionID, key)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "preference not found")
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to load preference",
				"error", err, "key", key, "request_id", RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "failed to load preference")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})

	case http.MethodPut:
		body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		var payload struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "body must be JSON with a value field")
			return
		}
		if err := s.prefs.Set(r.Context(), sessionID, key, payload.Value); err != nil {
			slog.ErrorContext(r.Context(), "Failed to save preference",
				"error", err, "key", key, "request_id", RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "failed to save preference")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": payload.Value})

	case http.MethodDelete:
		if err := s.prefs.Delete(r.Context(), sessionID, key); err != nil {
			slog.ErrorContext(r.Context(), "Failed to delete preference",
				"error", err, "key", key, "request_id", RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "failed to delete preference")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// parseFilterState maps query parameters onto a filter. "Todos" is the UI's
// all-selector and is treated the same as an absent parameter.
func parseFilterState(r *http.Request) core.FilterState {
	q := r.URL.Query()
	filter := core.FilterState{
		Query:  strings.TrimSpace(q.Get("q")),
		Client: allSelector(q.Get("cliente")),
		Status: allSelector(q.Get("status")),
	}

	if mes := allSelector(q.Get("mes")); mes != "" {
		if m, err := strconv.Atoi(mes); err == nil && m >= 1 && m <= 12 {
			filter.Month = m
		}
	}
	if ano := allSelector(q.Get("ano")); ano != "" {
		if y, err := strconv.Atoi(ano); err == nil && y > 0 {
			filter.Year = y
		}
	}

	switch q.Get("periodo") {
	case "30d":
		filter.Range = core.Range30Days
	case "90d":
		filter.Range = core.Range90Days
	case "ytd":
		filter.Range = core.RangeYTD
	}

	return filter
}

func allSelector(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "Todos") {
		return ""
	}
	return v
}
