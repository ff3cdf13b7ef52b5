package api

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-tuid/internal/api/middleware"
	"github.com/lzjever/mbos-tuid/internal/minter"
)

type API struct {
	minter   *minter.Minter
	maxBatch int
	log      *zap.Logger
}

func NewAPI(m *minter.Minter, maxBatch int, log *zap.Logger) *API {
	return &API{
		minter:   m,
		maxBatch: maxBatch,
		log:      log,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Health endpoints
	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ids", a.MintIDs)
		r.Get("/ids/{id}", a.InspectID)
	})

	return r
}
