// Package server exposes the JSON API a front-end calls: health and ask.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"secbrief/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine    rag.Engine
	IndexSize int
}

// NewRouter creates the HTTP router.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Method(http.MethodGet, "/healthz", NewHealthHandler(deps.IndexSize))
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", NewAskHandler(deps.Engine))
	})

	return r
}
