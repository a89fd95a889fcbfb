// internal/app/features/classrooms/routes.go
package classrooms

import (
	"github.com/dalemusser/educonnect/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /api/classrooms. Every route requires a
// verified principal; per-route role and ownership checks happen in the
// handlers.
func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)

		// CREATE / LIST
		pr.Post("/", h.HandleCreate)
		pr.Get("/joinable", h.HandleListJoinable)
		pr.Get("/mine", h.HandleListMine)
		pr.Get("/student/{studentID}", h.HandleListForStudent)

		// MEMBERSHIP
		pr.Post("/join/{classroomID}", h.HandleRequestJoin)
		pr.Post("/approve/{classroomID}/{studentID}", h.HandleApprove)
		pr.Post("/decline/{classroomID}/{studentID}", h.HandleDecline)
		pr.Delete("/{classroomID}/remove/{studentID}", h.HandleRemove)

		// ROSTERS / AUDIT
		pr.Get("/pending/{classroomID}", h.HandlePendingRoster)
		pr.Get("/{classroomID}/students", h.HandleApprovedRoster)
		pr.Get("/{classroomID}/events", h.HandleEvents)

		// SINGLE CLASSROOM (last, so the static paths above win)
		pr.Get("/{classroomID}", h.HandleGet)
	})

	return r
}
