// internal/app/features/classrooms/list.go
package classrooms

import (
	"errors"
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/policy/classroompolicy"
	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// joinableClassroom is the trimmed listing shape for the student browse view.
type joinableClassroom struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Semester string `json:"semester"`
	Batch    string `json:"batch"`
	Teacher  string `json:"teacher"`
}

// HandleListJoinable handles GET /api/classrooms/joinable. Lists classrooms
// the student is not approved into; classrooms with a pending request are
// still shown.
func (h *Handler) HandleListJoinable(w http.ResponseWriter, r *http.Request) {
	role, _, studentID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleStudent {
		httpjson.Message(w, http.StatusForbidden, "Only students can browse classrooms")
		return
	}

	classrooms, err := h.Classrooms.ListJoinable(r.Context(), studentID)
	if err != nil {
		h.Log.Error("listing joinable classrooms", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error fetching classrooms")
		return
	}

	out := make([]joinableClassroom, 0, len(classrooms))
	for _, cls := range classrooms {
		out = append(out, joinableClassroom{
			ID:       cls.ID.Hex(),
			Subject:  cls.Subject,
			Semester: cls.Semester,
			Batch:    cls.Batch,
			Teacher:  cls.TeacherName,
		})
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleListMine handles GET /api/classrooms/mine, the teacher's own classes.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	role, _, teacherID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		httpjson.Message(w, http.StatusForbidden, "Only teachers have their own classes")
		return
	}

	classes, err := h.Classrooms.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		h.Log.Error("listing teacher classrooms", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	if classes == nil {
		classes = []models.Classroom{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"classes": classes})
}

// HandleListForStudent handles GET /api/classrooms/student/{studentID}.
// Students may only list their own approved classrooms. Answers 404 when
// the student has no classes, which the client relies on.
func (h *Handler) HandleListForStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := urlObjectID(w, r, "studentID", "No classes found")
	if !ok {
		return
	}
	if !classroompolicy.CanViewStudentClassrooms(r, studentID) {
		httpjson.Message(w, http.StatusForbidden, "Unauthorized to view these classes")
		return
	}

	classes, err := h.Classrooms.ListApprovedFor(r.Context(), studentID)
	if err != nil {
		h.Log.Error("listing student classrooms", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(classes) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No classes found")
		return
	}
	httpjson.Write(w, http.StatusOK, classes)
}

// HandleGet handles GET /api/classrooms/{classroomID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}

	cls, err := h.Classrooms.GetByID(r.Context(), classroomID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return
	}
	if err != nil {
		h.Log.Error("loading classroom", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, cls)
}
