// internal/app/features/classrooms/membership.go
package classrooms

import (
	"errors"
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/policy/classroompolicy"
	"github.com/dalemusser/educonnect/internal/app/store/audit"
	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleRequestJoin handles POST /api/classrooms/join/{classroomID}.
func (h *Handler) HandleRequestJoin(w http.ResponseWriter, r *http.Request) {
	if !classroompolicy.CanRequestJoin(r) {
		httpjson.Message(w, http.StatusForbidden, "Only students can request to join")
		return
	}
	_, _, studentID, _ := authz.UserCtx(r)

	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}

	err := h.Classrooms.RequestJoin(r.Context(), classroomID, studentID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return
	case errors.Is(err, classroomstore.ErrAlreadyPending):
		httpjson.Message(w, http.StatusBadRequest, "Request already sent")
		return
	case errors.Is(err, classroomstore.ErrAlreadyApproved):
		httpjson.Message(w, http.StatusBadRequest, "Already a member of this classroom")
		return
	case err != nil:
		h.Log.Error("requesting join", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error sending join request")
		return
	}

	h.recordEvent(r, classroomID, studentID, studentID, audit.ActionRequested)
	httpjson.Message(w, http.StatusOK, "Join request sent successfully")
}

// ownedClassroom loads a classroom and checks that the caller is the owning
// teacher. It writes the error response itself when the check fails.
func (h *Handler) ownedClassroom(w http.ResponseWriter, r *http.Request, classroomID primitive.ObjectID, forbiddenMsg string) (models.Classroom, bool) {
	cls, err := h.Classrooms.GetByID(r.Context(), classroomID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return models.Classroom{}, false
	}
	if err != nil {
		h.Log.Error("loading classroom", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return models.Classroom{}, false
	}
	if !classroompolicy.CanManageRoster(r, cls) {
		httpjson.Message(w, http.StatusForbidden, forbiddenMsg)
		return models.Classroom{}, false
	}
	return cls, true
}

// HandleApprove handles POST /api/classrooms/approve/{classroomID}/{studentID}.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	studentID, ok := urlObjectID(w, r, "studentID", "Student did not request to join")
	if !ok {
		return
	}
	if _, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to approve requests"); !ok {
		return
	}

	err := h.Classrooms.Approve(r.Context(), classroomID, studentID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return
	case errors.Is(err, classroomstore.ErrNotPending):
		httpjson.Message(w, http.StatusBadRequest, "Student did not request to join")
		return
	case err != nil:
		h.Log.Error("approving student", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error approving student")
		return
	}

	_, _, teacherID, _ := authz.UserCtx(r)
	h.recordEvent(r, classroomID, studentID, teacherID, audit.ActionApproved)
	httpjson.Message(w, http.StatusOK, "Student approved successfully")
}

// HandleDecline handles POST /api/classrooms/decline/{classroomID}/{studentID}.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	studentID, ok := urlObjectID(w, r, "studentID", "Student not found in pending list")
	if !ok {
		return
	}
	if _, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to decline requests"); !ok {
		return
	}

	err := h.Classrooms.Decline(r.Context(), classroomID, studentID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return
	case errors.Is(err, classroomstore.ErrNotPending):
		httpjson.Message(w, http.StatusBadRequest, "Student not found in pending list")
		return
	case err != nil:
		h.Log.Error("declining student", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Error declining student")
		return
	}

	_, _, teacherID, _ := authz.UserCtx(r)
	h.recordEvent(r, classroomID, studentID, teacherID, audit.ActionDeclined)
	httpjson.Message(w, http.StatusOK, "Student declined successfully")
}

// HandleRemove handles DELETE /api/classrooms/{classroomID}/remove/{studentID}.
// Restricted to the owning teacher.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := urlObjectID(w, r, "classroomID", "Classroom not found")
	if !ok {
		return
	}
	studentID, ok := urlObjectID(w, r, "studentID", "Student is not in this classroom")
	if !ok {
		return
	}
	if _, ok := h.ownedClassroom(w, r, classroomID, "Unauthorized to remove students"); !ok {
		return
	}

	err := h.Classrooms.RemoveApproved(r.Context(), classroomID, studentID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Message(w, http.StatusNotFound, "Classroom not found")
		return
	case errors.Is(err, classroomstore.ErrNotApproved):
		httpjson.Message(w, http.StatusBadRequest, "Student is not in this classroom")
		return
	case err != nil:
		h.Log.Error("removing student", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, _, teacherID, _ := authz.UserCtx(r)
	h.recordEvent(r, classroomID, studentID, teacherID, audit.ActionRemoved)
	httpjson.Message(w, http.StatusOK, "Student removed successfully")
}
