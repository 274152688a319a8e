package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/parcelsim/core/logger"
	"github.com/kilianp07/parcelsim/core/runlog"
	"github.com/kilianp07/parcelsim/core/scenario"
	"github.com/kilianp07/parcelsim/core/scheduler"
	"github.com/kilianp07/parcelsim/core/simulation"
	inframetrics "github.com/kilianp07/parcelsim/infra/metrics"
)

// Runner executes one scheduling run.
type Runner interface {
	Run(ctx context.Context, cfg scheduler.Config, in *scenario.Inputs) (simulation.Report, error)
}

// Server routes HTTP requests to the runner and the run log.
type Server struct {
	router   chi.Router
	runner   Runner
	store    runlog.Store
	defaults scheduler.Config
	token    string
	gatherer prometheus.Gatherer
	log      logger.Logger
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithToken requires a bearer token on /api/v1 routes.
func WithToken(token string) Option { return func(s *Server) { s.token = token } }

// WithGatherer selects the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option { return func(s *Server) { s.gatherer = g } }

func WithLogger(l logger.Logger) Option { return func(s *Server) { s.log = logger.OrNop(l) } }

// New creates a Server with all routes registered. defaults is the scheduler
// configuration used when a request does not override it.
func New(runner Runner, store runlog.Store, defaults scheduler.Config, opts ...Option) *Server {
	if store == nil {
		store = runlog.NopStore{}
	}
	defaults.SetDefaults()
	s := &Server{
		router:   chi.NewRouter(),
		runner:   runner,
		store:    store,
		defaults: defaults,
		log:      logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", inframetrics.Handler(s.gatherer))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/schedule", s.handleSchedule)
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireToken rejects requests without the configured bearer token.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debugw("request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
	})
}
