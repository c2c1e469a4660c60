// Package http exposes status maps over a JSON HTTP API.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/presentation/graph"
	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/registry"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, err
	}
	return doc, nil
})

// Spec returns the parsed and validated OpenAPI document of the API.
func Spec() (*openapi3.T, error) {
	return loadSpec()
}

// RawSpec returns the embedded OpenAPI document.
func RawSpec() []byte {
	return rawSpec
}

// Server serves the maps held by a registry.
type Server struct {
	Registry *registry.Registry
	logger   *slog.Logger
}

type options struct {
	logger     *slog.Logger
	metrics    http.Handler
	rateLimit  int
	rateWindow time.Duration
}

// Option configures the handler.
type Option func(*options)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithRateLimit limits /maps requests per client IP. A limit of zero disables it.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(o *options) {
		o.rateLimit = limit
		o.rateWindow = window
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{Registry: reg, logger: o.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}

	r.Route("/maps", func(r chi.Router) {
		if o.rateLimit > 0 {
			r.Use(httprate.Limit(o.rateLimit, o.rateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				}),
			))
		}

		r.Get("/", s.ListMaps)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetMap)
			r.Put("/", s.PutMap)
			r.Delete("/", s.DeleteMap)
			r.Get("/graph", s.GetGraph)
			r.Post("/validate", s.ValidateTransition)
			r.Post("/sequence", s.ValidateSequence)
			r.Get("/statuses/{status}", s.DescribeStatus)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "statusmap-http",
		"version":     strings.TrimSpace(statusmap.Version),
		"api_version": apiVersion,
	})
}

// ListMaps handles the GET /maps request.
func (s *Server) ListMaps(w http.ResponseWriter, r *http.Request) {
	names, err := s.Registry.Names(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"maps": names})
}

// GetMap handles the GET /maps/{name} request.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	m, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMapResponse(m))
}

// PutMap handles the PUT /maps/{name} request.
func (s *Server) PutMap(w http.ResponseWriter, r *http.Request) {
	var body DefinitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("PutMap: invalid request body", "err", err)
		return
	}

	def := domain.Definition{
		Name:        chi.URLParam(r, "name"),
		Description: body.Description,
		Transitions: body.Transitions,
	}
	m, err := s.Registry.Put(r.Context(), def)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTransitions) || errors.Is(err, domain.ErrUnnamedDefinition) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMapResponse(m))
}

// DeleteMap handles the DELETE /maps/{name} request.
func (s *Server) DeleteMap(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles the GET /maps/{name}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "mermaid"
	}
	if format != "mermaid" && format != "dot" {
		writeError(w, http.StatusBadRequest, "format must be mermaid or dot")
		return
	}

	m, ok := s.resolve(w, r)
	if !ok {
		return
	}

	var overlay *graph.Overlay
	if from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to"); from != "" || to != "" {
		overlay = &graph.Overlay{From: from, To: to}
	}

	out := graph.GenerateMermaid(m, overlay)
	if format == "dot" {
		out = graph.GenerateDOT(m, overlay)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// ValidateTransition handles the POST /maps/{name}/validate request.
// Every outcome is answered with 200; the verdict carries the result.
func (s *Server) ValidateTransition(w http.ResponseWriter, r *http.Request) {
	var body TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("ValidateTransition: invalid request body", "err", err)
		return
	}

	m, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newVerdictResponse(m.Classify(body.From, body.To)))
}

// ValidateSequence handles the POST /maps/{name}/sequence request.
func (s *Server) ValidateSequence(w http.ResponseWriter, r *http.Request) {
	var body SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("ValidateSequence: invalid request body", "err", err)
		return
	}

	m, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSequenceResponse(m.ValidateSequence(body.Statuses...)))
}

// DescribeStatus handles the GET /maps/{name}/statuses/{status} request.
func (s *Server) DescribeStatus(w http.ResponseWriter, r *http.Request) {
	m, ok := s.resolve(w, r)
	if !ok {
		return
	}

	status := chi.URLParam(r, "status")
	if !m.Contains(status) {
		writeError(w, http.StatusNotFound, "status "+status+" not found")
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(m, status))
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*statusmap.Map, bool) {
	m, err := s.Registry.Resolve(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return m, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrDefinitionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
