// Package transport exposes the control surface over HTTP and websockets.
//
// Routes:
//
//	GET  /api/state    state query
//	POST /api/active   set-active command
//	GET  /ws           sync events out, control presses in
//	GET  /healthz      liveness
//	GET  /metrics      Prometheus scrape (when configured)
//	GET  <assets>      icon files (when configured)
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

const maxRequestBody = 1 << 20

// StateService answers state queries and set-active commands.
type StateService interface {
	State() dto.StateView
	SetActive(req dto.SetActiveRequest) (dto.StateView, error)
}

// Options configures optional routes.
type Options struct {
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// AssetsPrefix and AssetsDir serve icon files when both are set.
	AssetsPrefix string
	AssetsDir    string
}

// Server routes HTTP requests to the control surface and the hub.
type Server struct {
	state  StateService
	hub    *Hub
	opts   Options
	logger *slog.Logger
}

// NewServer creates a server.
func NewServer(state StateService, hub *Hub, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{state: state, hub: hub, opts: opts, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/active", s.handleSetActive)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /ws", s.hub)
	if s.opts.Metrics != nil {
		mux.Handle("GET /metrics", s.opts.Metrics)
	}
	if prefix := assetsPrefix(s.opts.AssetsPrefix); prefix != "" && s.opts.AssetsDir != "" {
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(s.opts.AssetsDir))))
	}
	return mux
}

// assetsPrefix returns prefix as a mux subtree pattern, or "" when the
// icons are hosted elsewhere.
func assetsPrefix(prefix string) string {
	if !strings.HasPrefix(prefix, "/") {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.State())
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req dto.SetActiveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is empty")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid set-active request payload")
		return
	}

	view, err := s.state.SetActive(req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("set active failed", "profile_id", req.ProfileID, "page_id", req.PageID, "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": s.hub.ClientCount()})
}

func errorStatus(err error) int {
	switch {
	case entities.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
