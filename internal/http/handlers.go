package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ledgerview/internal/core"
	"ledgerview/internal/ledger"
	applog "ledgerview/internal/log"
)

// isForceRefresh reports whether the request asks to bypass the cache.
func isForceRefresh(r *http.Request) bool {
	switch r.URL.Query().Get("refresh") {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded",
			applog.FieldComponent, applog.ComponentTemplate)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	force := isForceRefresh(r)
	snap, err := s.snapshots.Get(r.Context(), force)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", snap); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentTemplate)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.snapshots.Get(r.Context(), isForceRefresh(r))
	if err != nil {
		status, _, errType := classifyError(err)
		slog.ErrorContext(r.Context(), "Dashboard snapshot error",
			applog.FieldError, err,
			"error_type", errType)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": errType})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard JSON encoding failed", applog.FieldError, err)
	}
}

// renderError maps a refresh failure onto the error page. Upstream API
// failures are transient (the user can retry); everything else is internal.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, errType := classifyError(err)

	slog.ErrorContext(r.Context(), "Dashboard refresh failed",
		applog.FieldError, err,
		applog.FieldStatusCode, status,
		"error_type", errType)

	w.WriteHeader(status)
	if s.templates != nil {
		data := struct {
			Message string
			Detail  string
		}{Message: message, Detail: err.Error()}
		if terr := s.templates.ExecuteTemplate(w, "error.html", data); terr == nil {
			return
		}
	}
	_, _ = w.Write([]byte(message))
}

func classifyError(err error) (status int, message, errType string) {
	var apiErr *ledger.APIError
	switch {
	case errors.As(err, &apiErr):
		return http.StatusBadGateway,
			"Could not fetch data from the ledger API. Check the configuration and network, then retry.",
			applog.ErrorTypeUpstream
	case errors.Is(err, core.ErrMalformedRecord):
		return http.StatusInternalServerError,
			"The ledger API returned a transaction this dashboard could not parse.",
			applog.ErrorTypeMalformed
	default:
		return http.StatusInternalServerError,
			"Unexpected error while building the dashboard.",
			applog.ErrorTypeInternal
	}
}
