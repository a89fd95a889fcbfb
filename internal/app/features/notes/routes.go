// internal/app/features/notes/routes.go
package notes

import (
	"github.com/dalemusser/educonnect/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /api/notes.
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
