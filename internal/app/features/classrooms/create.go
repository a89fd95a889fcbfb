// internal/app/features/classrooms/create.go
package classrooms

import (
	"errors"
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/policy/classroompolicy"
	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Semester string `json:"semester"`
	Batch    string `json:"batch"`
	Subject  string `json:"subject"`
}

// HandleCreate handles POST /api/classrooms. Only teachers create
// classrooms; the creator becomes the owner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !classroompolicy.CanCreateClassroom(r) {
		httpjson.Message(w, http.StatusForbidden, "Only teachers can create classrooms")
		return
	}
	_, name, teacherID, _ := authz.UserCtx(r)

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Semester == "" || req.Batch == "" || req.Subject == "" {
		httpjson.Message(w, http.StatusBadRequest, "All fields are required")
		return
	}

	cls, err := h.Classrooms.Create(r.Context(), models.Classroom{
		Semester:    req.Semester,
		Batch:       req.Batch,
		Subject:     req.Subject,
		TeacherID:   teacherID,
		TeacherName: name,
	})
	if errors.Is(err, classroomstore.ErrDuplicateClassroom) {
		httpjson.Message(w, http.StatusBadRequest, "Classroom already exists")
		return
	}
	if err != nil {
		h.Log.Error("creating classroom", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Server Error")
		return
	}

	httpjson.Write(w, http.StatusCreated, cls)
}
