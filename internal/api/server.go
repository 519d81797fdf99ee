// Package api serves a resolved documentation model over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

// Server represents the API server
type Server struct {
	router   *chi.Mux
	gatherer prometheus.Gatherer

	mu    sync.RWMutex
	model *model.Model
	runID string
}

// NewServer creates a new API server. Metrics are served from gatherer; a nil
// gatherer falls back to the default registry.
func NewServer(gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		router:   chi.NewRouter(),
		gatherer: gatherer,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	return s.router
}

// SetModel replaces the model being served
func (s *Server) SetModel(m *model.Model, runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
	s.runID = runID
}

func (s *Server) current() (*model.Model, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.runID
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ready", s.readyCheck)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	// API v1
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireModel)

		r.Get("/classes", s.listClasses)
		r.Get("/classes/{className}", s.getClass)
		r.Get("/tree", s.getTree)
		r.Get("/packages/{packageName}", s.getPackage)
	})
}

// Health check handlers
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyCheck(w http.ResponseWriter, r *http.Request) {
	if m, _ := s.current(); m == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "building"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) requireModel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m, _ := s.current(); m == nil {
			writeError(w, http.StatusServiceUnavailable, "model not built yet")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClassListResponse is returned by GET /api/v1/classes
type ClassListResponse struct {
	RunID   string           `json:"run_id"`
	Total   int              `json:"total"`
	Classes []model.ClassRef `json:"classes"`
}

func (s *Server) listClasses(w http.ResponseWriter, r *http.Request) {
	m, runID := s.current()
	pkg := r.URL.Query().Get("package")

	refs := make([]model.ClassRef, 0, len(m.Classes))
	for _, cls := range m.Classes {
		if pkg != "" && cls.PackageName != pkg {
			continue
		}
		refs = append(refs, cls.Ref())
	}

	writeJSON(w, http.StatusOK, ClassListResponse{
		RunID:   runID,
		Total:   len(refs),
		Classes: refs,
	})
}

func (s *Server) getClass(w http.ResponseWriter, r *http.Request) {
	m, _ := s.current()
	name := chi.URLParam(r, "className")

	cls := m.Class(name)
	if cls == nil {
		writeError(w, http.StatusNotFound, "class not found: "+name)
		return
	}
	writeJSON(w, http.StatusOK, cls)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	m, _ := s.current()
	writeJSON(w, http.StatusOK, m.Tree)
}

func (s *Server) getPackage(w http.ResponseWriter, r *http.Request) {
	m, _ := s.current()
	name := chi.URLParam(r, "packageName")

	var pkg *model.Package
	if m.Tree != nil {
		pkg = m.Tree.Find(name)
	}
	if pkg == nil {
		writeError(w, http.StatusNotFound, "package not found: "+name)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
