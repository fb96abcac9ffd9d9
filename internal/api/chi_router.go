// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/middleware"
	"github.com/tomtom215/sifter/internal/models"
)

// slowRequestThreshold promotes access log lines to warn.
const slowRequestThreshold = 2 * time.Second

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	logger        zerolog.Logger
}

// NewRouter creates a router. A nil mw selects the default middleware
// configuration.
func NewRouter(handler *Handler, mw *ChiMiddleware, logger zerolog.Logger) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, logger: logger}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(router.logger, slowRequestThreshold))
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondAPIError(w, http.StatusNotFound, &models.APIError{Code: ErrCodeNotFound, Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondAPIError(w, http.StatusMethodNotAllowed, &models.APIError{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Route("/feedback", func(r chi.Router) {
			r.Get("/", router.handler.ListFeedback)
			r.Post("/", router.handler.RecordFeedback)
			r.Get("/{id}", router.handler.GetFeedback)
			r.Delete("/{id}", router.handler.DeleteFeedback)
		})

		r.Route("/pool", func(r chi.Router) {
			r.Post("/items", router.handler.AddPoolItems)
			r.Get("/search", router.handler.SearchPool)
			r.Get("/status", router.handler.PoolStatus)
		})

		r.Get("/feed", router.handler.Feed)
		r.Get("/search", router.handler.Search)
		r.Post("/rank", router.handler.Rank)
		r.Post("/filter/score", router.handler.ScoreItem)

		r.Route("/model", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitTrain()).Post("/train", router.handler.TrainModel)
			r.Get("/status", router.handler.ModelStatus)
		})
	})

	return r
}
