package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/kurobon/gitview/internal/config"
	"github.com/kurobon/gitview/internal/state"
)

type Server struct {
	Manager *state.Manager
	Config  *config.Config
	Mux     *http.ServeMux
}

func NewServer(m *state.Manager, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Global
	}
	s := &Server{
		Manager: m,
		Config:  cfg,
		Mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)

	s.Mux.HandleFunc("/api/history", s.handleHistory)
	s.Mux.HandleFunc("/api/history/file", s.handleFileHistory)
	s.Mux.HandleFunc("/api/refs", s.handleRefs)

	s.Mux.HandleFunc("/api/diff/commit", s.handleCommitDiff)
	s.Mux.HandleFunc("/api/diff/parse", s.handleParseDiff)
	s.Mux.HandleFunc("/api/diff/words", s.handleWordDiff)

	s.Mux.HandleFunc("/api/diff/worktree", s.handleWorktreeDiff)
	s.Mux.HandleFunc("/api/diff/changes", s.handleChangedFiles)
	s.Mux.HandleFunc("/api/diff/image", s.handleImageDiff)
	s.Mux.HandleFunc("/api/file", s.handleFileContent)
	s.Mux.HandleFunc("/api/image", s.handleImage)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logRequests(s.Mux).ServeHTTP(w, r)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "pong",
		"system":  "gitview",
	})
}

// errBadRequest marks client mistakes in query parameters and bodies.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode response", "err", err)
	}
}

// writeError maps data-source errors onto status codes and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, state.ErrRepoNotFound),
		errors.Is(err, state.ErrCommitNotFound),
		errors.Is(err, state.ErrFileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		status = 499
	}
	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// repoName is the ?repo= parameter or the configured default.
func (s *Server) repoName(r *http.Request) string {
	if name := r.URL.Query().Get("repo"); name != "" {
		return name
	}
	return s.Config.DefaultRepo
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, badRequest("%s must be a non-negative integer", name)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("%s must be a boolean", name)
	}
	return b, nil
}

func requiredParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", badRequest("%s required", name)
	}
	return v, nil
}
