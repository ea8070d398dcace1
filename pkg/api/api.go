// Package api exposes the carbon calculator over HTTP. The server wraps the
// same pipeline.Runner the CLI uses, adds single-tree volume and carbon
// endpoints for interactive use, and (when a run store is configured) keeps a
// queryable history of pipeline runs.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/store"
)

// Config configures the API server.
type Config struct {
	Addr    string // listen address, default ":8080"
	DataDir string // FPS export directory used by POST /v1/runs
	OutDir  string // report directory, default <DataDir>/FPS2ARB_Outputs

	Runner *pipeline.Runner // required
	Store  store.Store      // optional run history
	Logger *log.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	router chi.Router
	logger *log.Logger
	start  time.Time

	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the router and handlers. Call Start to begin serving.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "api server requires a pipeline runner")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		// Pipeline runs on large inventories can take a while.
		cfg.WriteTimeout = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{cfg: cfg, logger: cfg.Logger, start: time.Now()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/species", s.handleSpecies)
		r.Post("/volume", s.handleVolume)
		r.Post("/carbon", s.handleCarbon)
		r.Post("/runs", s.handleCreateRun)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start binds the listener and serves until the context is canceled or
// Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", s.cfg.Addr)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info("api server listening", "addr", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(errors.ErrCodeIO, err, "serve")
	}
	return nil
}

// Addr returns the bound address once the server has started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var code errors.Code
	if e, ok := err.(*errors.Error); ok {
		code = e.Code
		switch e.Code {
		case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRegion,
			errors.ErrCodeInvalidSpecies, errors.ErrCodeInvalidEquation,
			errors.ErrCodeInvalidMetric, errors.ErrCodeInvalidTree,
			errors.ErrCodeInvalidPath, errors.ErrCodeParse:
			status = http.StatusBadRequest
		case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound,
			errors.ErrCodeSpeciesNotFound:
			status = http.StatusNotFound
		case errors.ErrCodeUnsupported:
			status = http.StatusUnprocessableEntity
		}
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
