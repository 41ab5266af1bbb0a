// Package server exposes the GraphQL schema over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Schema graphql.Schema
	// RequestTimeout bounds each GraphQL execution; zero means no bound.
	RequestTimeout time.Duration
	Ping           PingFunc
	Metrics        *metrics.Metrics
	// Gatherer backs /metrics. The route is not mounted when nil.
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options) http.Handler {
	h := &handler{
		schema:  opts.Schema,
		timeout: opts.RequestTimeout,
		ping:    opts.Ping,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", h.home)
	r.Post("/graphql", h.graphQL)
	r.Get("/healthz", h.health)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
