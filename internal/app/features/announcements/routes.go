// internal/app/features/announcements/routes.go
package announcements

import (
	"github.com/dalemusser/educonnect/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /api/announcements.
func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.HandleListMine)
		pr.Get("/student", h.HandleListForStudent)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
