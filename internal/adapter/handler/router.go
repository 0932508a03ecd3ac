package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the hub's routes and middleware.
func NewRouter(h *HTTPHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", h.HealthCheck)

	r.Route("/{team}", func(r chi.Router) {
		r.Route("/inventory-item", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Get("/{itemID}", h.GetItem)
			r.Put("/{itemID}", h.PutItem)
			r.Post("/{itemID}", h.PostItem)
		})
		r.Get("/inventory-order", h.ListOrders)
		r.Put("/robot-location/{locationID}", h.PutLocation)
		r.Post("/robot-status/{statusID}", h.PostStatus)
	})

	return r
}
