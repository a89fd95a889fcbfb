// internal/app/features/announcements/manage.go
package announcements

import (
	"errors"
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/policy/classroompolicy"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// authoredAnnouncement loads an announcement and checks the caller wrote it.
// It writes the error response itself when the check fails.
func (h *Handler) authoredAnnouncement(w http.ResponseWriter, r *http.Request) (models.Announcement, bool) {
	id, ok := urlAnnouncementID(r)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "Announcement not found")
		return models.Announcement{}, false
	}

	ann, err := h.Announcements.GetByID(r.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Announcement not found")
		return models.Announcement{}, false
	}
	if err != nil {
		h.Log.Error("loading announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return models.Announcement{}, false
	}
	if !classroompolicy.CanManageContent(r, ann.TeacherID) {
		httpjson.Error(w, http.StatusForbidden, "Unauthorized to modify this announcement")
		return models.Announcement{}, false
	}
	return ann, true
}

// HandleUpdate handles PUT /api/announcements/{id}. A new image replaces and
// deletes the old one.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ann, ok := h.authoredAnnouncement(w, r)
	if !ok {
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

	imageURL := ""
	if form.hasImage {
		imageURL, err = h.storeImage(&form)
		if err != nil {
			h.Log.Error("storing announcement image", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Failed to update announcement.")
			return
		}
	}

	if err := h.Announcements.UpdateContent(r.Context(), ann.ID, form.Heading, form.Text, form.hasImage, imageURL); err != nil {
		h.deleteImage(imageURL)
		h.Log.Error("updating announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update announcement.")
		return
	}
	if form.hasImage {
		h.deleteImage(ann.ImageURL)
	}

	updated, err := h.Announcements.GetByID(r.Context(), ann.ID)
	if err != nil {
		h.Log.Error("reloading announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update announcement.")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":      "Announcement updated successfully",
		"announcement": updated,
	})
}

// HandleDelete handles DELETE /api/announcements/{id}, removing the stored
// image alongside the document.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ann, ok := h.authoredAnnouncement(w, r)
	if !ok {
		return
	}

	if _, err := h.Announcements.Delete(r.Context(), ann.ID); err != nil {
		h.Log.Error("deleting announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete announcement.")
		return
	}
	h.deleteImage(ann.ImageURL)

	httpjson.Message(w, http.StatusOK, "Announcement deleted successfully")
}
