// internal/app/features/announcements/create.go
package announcements

import (
	"errors"
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/announcements. Only the classroom's owning
// teacher may post to it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	role, _, teacherID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		httpjson.Error(w, http.StatusForbidden, "Only teachers can create announcements")
		return
	}

	form, err := parseForm(w, r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.Heading == "" {
		httpjson.Error(w, http.StatusBadRequest, "Heading is required.")
		return
	}
	classroomID, err := primitive.ObjectIDFromHex(form.ClassroomID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid classroom id")
		return
	}

	cls, err := h.Classrooms.GetByID(r.Context(), classroomID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Classroom not found")
		return
	}
	if err != nil {
		h.Log.Error("loading classroom", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create announcement.")
		return
	}
	if cls.TeacherID != teacherID {
		httpjson.Error(w, http.StatusForbidden, "Unauthorized to post to this classroom")
		return
	}

	imageURL, err := h.storeImage(&form)
	if err != nil {
		h.Log.Error("storing announcement image", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create announcement.")
		return
	}

	ann, err := h.Announcements.Create(r.Context(), models.Announcement{
		ClassroomID: classroomID,
		TeacherID:   teacherID,
		Heading:     form.Heading,
		Text:        form.Text,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.deleteImage(imageURL)
		h.Log.Error("creating announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create announcement.")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message":      "Announcement created successfully!",
		"announcement": ann,
	})
}
