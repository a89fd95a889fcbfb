// internal/app/features/classrooms/roster.go
package classrooms

import (
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// rosterStudent is the roster listing shape: just enough to render a list
// of students, never emails CI fields or hashes.
type rosterStudent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) rosterStudents(r *http.Request, ids []primitive.ObjectID) ([]rosterStudent, error) {
	users, err := h.Users.GetStudentsByIDs(r.Context(), ids)
	if err != nil {
		return nil, err
	}
	out := make([]rosterStudent, 0, len(users))
	for _, u := range users {
		out = append(out, rosterStudent{ID: u.ID.Hex(), Name: u.Name, Email: u.Email})
	}
	return out, nil
}

// HandlePendingRoster handles GET /api/classrooms/pending/{classroomID}.
// Owning teacher only.
func (h *Handler) HandlePendingRoster(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	cls, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to view pending students")
	if !ok {
		return
	}

	students, err := h.rosterStudents(r, cls.PendingStudentIDs)
	if err != nil {
		h.Log.Error("loading pending students", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching pending students")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"subject":         cls.Subject,
		"batch":           cls.Batch,
		"semester":        cls.Semester,
		"pendingStudents": students,
	})
}

// HandleApprovedRoster handles GET /api/classrooms/{classroomID}/students.
// Owning teacher only.
func (h *Handler) HandleApprovedRoster(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	cls, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to view students")
	if !ok {
		return
	}

	students, err := h.rosterStudents(r, cls.ApprovedStudentIDs)
	if err != nil {
		h.Log.Error("loading approved students", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching students")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"subject":          cls.Subject,
		"batch":            cls.Batch,
		"semester":         cls.Semester,
		"approvedStudents": students,
	})
}

// HandleEvents handles GET /api/classrooms/{classroomID}/events, the
// membership audit trail. Owning teacher only.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	if _, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to view membership events"); !ok {
		return
	}

	events, err := h.Audit.ListByClassroom(r.Context(), classroomID)
	if err != nil {
		h.Log.Error("loading membership events", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching membership events")
		return
	}
	if events == nil {
		events = []models.MembershipEvent{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"events": events})
}
