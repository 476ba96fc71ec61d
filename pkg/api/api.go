// Package api exposes the arrange pipeline over HTTP.
//
// The API is a thin layer over [pipeline.Runner] and [store.Store]: POST a
// scene to arrange and persist it, then fetch the positioned document or its
// rendered SVG by id.
//
// # Endpoints
//
//	GET    /healthz              liveness probe
//	POST   /v1/layouts           arrange a scene and store the result
//	GET    /v1/layouts           list stored layouts, newest first
//	GET    /v1/layouts/{id}      fetch a stored layout document
//	GET    /v1/layouts/{id}/svg  render a stored layout as SVG
//	DELETE /v1/layouts/{id}      remove a stored layout
//
// Errors are returned as a JSON envelope carrying the structured error code:
//
//	{"error": {"code": "LAYOUT_NOT_FOUND", "message": "layout abc not found"}}
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/pipeline"
	"github.com/ufmtooling/shapecanvas/pkg/render"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
	"github.com/ufmtooling/shapecanvas/pkg/store"
)

// maxRequestBytes caps arrange request bodies at 4 MiB.
const maxRequestBytes = 4 << 20

// Server handles HTTP requests for the arrange API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server over the given runner and store.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
		r.Get("/{id}/svg", s.handleGetLayoutSVG)
		r.Delete("/{id}", s.handleDeleteLayout)
	})
	return r
}

// ArrangeRequest is the body of POST /v1/layouts.
type ArrangeRequest struct {
	Scene   *scene.Scene     `json:"scene"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the document shape returned by the layout endpoints.
type LayoutResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Strategy  string        `json:"strategy"`
	CreatedAt time.Time     `json:"created_at"`
	Result    layout.Result `json:"result"`
	Scene     *scene.Scene  `json:"scene"`
}

func layoutResponse(doc *store.Document) LayoutResponse {
	return LayoutResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Strategy:  doc.Strategy,
		CreatedAt: doc.CreatedAt,
		Result:    doc.Result,
		Scene:     doc.Scene,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req ArrangeRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Scene == nil {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}

	// The API stores documents; artifacts are rendered on demand.
	req.Options.Formats = []string{render.FormatJSON}

	// Validate up front so the stored document records the defaulted strategy.
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Scene, req.Options)
	if err != nil {
		s.respondError(w, err)
		return
	}

	doc := store.NewDocument(result.Scene, result.Layout, req.Options.Strategy)
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.respondError(w, err)
		return
	}

	s.logger.Info("stored layout",
		"id", doc.ID,
		"strategy", doc.Strategy,
		"nodes", result.Stats.NodeCount)

	s.respondJSON(w, http.StatusCreated, layoutResponse(doc))
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %s", v))
			return
		}
		limit = n
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]LayoutResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, layoutResponse(doc))
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"layouts": out})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, layoutResponse(doc))
}

func (s *Server) handleGetLayoutSVG(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.RenderSVG(doc.Scene))
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorEnvelope is the JSON shape of API errors.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}

	s.respondJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusForCode maps structured error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayoutNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
