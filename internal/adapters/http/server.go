// Package http exposes the workflow engine over a JSON API, plus the
// browser upload UI, health, and metrics endpoints.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nutrigraph/nutrigraph"
	"github.com/nutrigraph/nutrigraph/internal/metrics"
	pres "github.com/nutrigraph/nutrigraph/internal/presentation/graph"
	"github.com/nutrigraph/nutrigraph/pkg/domain"
	"github.com/nutrigraph/nutrigraph/pkg/ports"
)

// Server binds the named workflows to the HTTP surface.
type Server struct {
	workflows map[string]*nutrigraph.Workflow
	store     ports.RunStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewServer creates the HTTP server. The store may be nil when runs need
// not be re-fetchable; metrics may be nil to disable instrumentation.
func NewServer(workflows map[string]*nutrigraph.Workflow, store ports.RunStore, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		workflows: workflows,
		store:     store,
		metrics:   m,
		logger:    logger,
	}
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/workflows", s.listWorkflows)
		r.Post("/runs", s.createRun)
		r.Get("/runs/{id}", s.getRun)
		r.Get("/graph", s.getGraph)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.workflows))
	for name := range s.workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string]any{"workflows": names})
}

// RunRequest is the POST /api/runs body.
type RunRequest struct {
	Workflow string         `json:"workflow"`
	State    map[string]any `json:"state"`
}

func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("createRun: invalid request body", "err", err)
		return
	}

	wf, ok := s.workflows[body.Workflow]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown workflow %q", body.Workflow), http.StatusBadRequest)
		return
	}

	run, err := wf.Execute(r.Context(), uuid.NewString(), domain.State(body.State))
	if err != nil {
		// Run-time failures are part of the API surface: the record
		// carries the status and error text for the UI to display.
		s.logger.Warn("run failed", "run", run.ID, "workflow", body.Workflow, "err", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveRun(run)
	}

	writeJSON(w, http.StatusOK, run)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Run persistence is not configured", http.StatusNotImplemented)
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("getRun failed", "run", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("workflow")
	if name == "" {
		name = "analysis"
	}
	wf, ok := s.workflows[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown workflow %q", name), http.StatusBadRequest)
		return
	}

	var overlay *pres.Overlay
	if runID := r.URL.Query().Get("run"); runID != "" && s.store != nil {
		run, err := s.store.Load(r.Context(), runID)
		if err == nil && len(run.Path) > 0 {
			overlay = &pres.Overlay{
				VisitedSteps: run.Path,
				CurrentStep:  run.Path[len(run.Path)-1],
			}
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, pres.GenerateMermaid(wf.Graph(), overlay))
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
