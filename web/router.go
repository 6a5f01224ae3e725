package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/identity"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/metrics"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/registry"
)

type Deps struct {
	Registry *registry.Registry
	Signer   *identity.Signer
	WS       http.Handler
	Rooms    []string
	Origins  []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := &Handlers{reg: d.Registry, signer: d.Signer, rooms: d.Rooms}

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/ws", d.WS)

	return r
}
