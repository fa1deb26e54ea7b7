package server

import (
	"net/http"
	"strings"

	"github.com/avdwal/rioview/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Recognitions
	mux.HandleFunc("/api/recognitions/", s.routeRecognitions)
	mux.HandleFunc("/api/recognitions", s.handleRecognitionSearch)

	// Institutions
	mux.HandleFunc("/api/institutions/", s.routeInstitutions)

	// Web UI
	mux.Handle("/static/", staticHandler())
	mux.HandleFunc("/", s.handleHome)
}

// routeRecognitions dispatches /api/recognitions/{id}/* to the appropriate handler.
func (s *Server) routeRecognitions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recognitions/")
	if path == "" {
		s.handleRecognitionSearch(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleRecognitionDetail(w, r, id)
	case "org-units":
		s.handleRecognitionOrgUnits(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeInstitutions dispatches /api/institutions/{unitCode}/* to the appropriate handler.
func (s *Server) routeInstitutions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/institutions/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	unitCode := parts[0]
	switch parts[1] {
	case "programs":
		s.handleInstitutionPrograms(w, r, unitCode)
	case "offered-programs":
		s.handleOfferedPrograms(w, r, unitCode)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
