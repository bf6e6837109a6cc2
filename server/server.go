// Package server is the HTTP transport in front of the grant pipeline. It
// parses token requests, resolves the caller profile, and renders the
// negotiated response; all protocol decisions live in the grants package.
package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-token-service/grants"
	"github.com/jrsteele09/go-token-service/internal/config"
	"github.com/jrsteele09/go-token-service/registry"
)

type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	pipeline *grants.Pipeline
	registry registry.Repo
	log      zerolog.Logger
}

func New(cfg config.Config, pipeline *grants.Pipeline, reg registry.Repo, log zerolog.Logger) *Server {
	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		pipeline: pipeline,
		registry: reg,
		log:      log,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+s.config.GetAccessTokenRoute(), ChainMiddleware(s.AccessToken(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET /healthz", s.HealthHandler())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.log.Info().Str("route", route).Msg("registered")
	}
}

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
