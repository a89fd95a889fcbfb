// internal/app/features/notes/handler.go
package notes

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/educonnect/internal/app/policy/classroompolicy"
	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	notestore "github.com/dalemusser/educonnect/internal/app/store/notes"
	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/blobstore"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the notes feature.
// Notes reference files by URL; files uploaded through this service live in
// the blob store and are cleaned up when the note is deleted.
type Handler struct {
	Notes      *notestore.Store
	Classrooms *classroomstore.Store
	Blobs      *blobstore.Local
	Log        *zap.Logger
}

// NewHandler constructs a notes Handler.
func NewHandler(db *mongo.Database, blobs *blobstore.Local, logger *zap.Logger) *Handler {
	return &Handler{
		Notes:      notestore.New(db),
		Classrooms: classroomstore.New(db),
		Blobs:      blobs,
		Log:        logger,
	}
}

type noteForm struct {
	ClassroomID string `json:"classroom_id"`
	Heading     string `json:"heading"`
	FileURL     string `json:"file_url"`
}

// HandleCreate handles POST /api/notes. Only the classroom's owning teacher
// may upload notes to it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	role, _, teacherID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		httpjson.Error(w, http.StatusForbidden, "Only teachers can upload notes")
		return
	}

	var form noteForm
	if err := httpjson.Decode(w, r, &form); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.FileURL == "" {
		httpjson.Error(w, http.StatusBadRequest, "File URL is required.")
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
		httpjson.Error(w, http.StatusInternalServerError, "Failed to upload note.")
		return
	}
	if cls.TeacherID != teacherID {
		httpjson.Error(w, http.StatusForbidden, "Unauthorized to upload to this classroom")
		return
	}

	note, err := h.Notes.Create(r.Context(), models.Note{
		ClassroomID: classroomID,
		TeacherID:   teacherID,
		Heading:     form.Heading,
		FileURL:     form.FileURL,
	})
	if err != nil {
		h.Log.Error("creating note", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to upload note.")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": "Note uploaded successfully!",
		"note":    note,
	})
}

// noteView joins a note with its classroom's details.
type noteView struct {
	ID        string    `json:"id"`
	Heading   string    `json:"heading"`
	FileURL   string    `json:"file_url"`
	Subject   string    `json:"subject"`
	Semester  string    `json:"semester"`
	Batch     string    `json:"batch"`
	CreatedAt time.Time `json:"created_at"`
}

func buildViews(notes []models.Note, classrooms []models.Classroom) []noteView {
	classes := make(map[primitive.ObjectID]models.Classroom, len(classrooms))
	for _, cls := range classrooms {
		classes[cls.ID] = cls
	}
	out := make([]noteView, 0, len(notes))
	for _, n := range notes {
		cls := classes[n.ClassroomID]
		out = append(out, noteView{
			ID:        n.ID.Hex(),
			Heading:   n.Heading,
			FileURL:   n.FileURL,
			Subject:   cls.Subject,
			Semester:  cls.Semester,
			Batch:     cls.Batch,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// HandleListMine handles GET /api/notes, the teacher's notes with class
// details.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	role, _, teacherID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		httpjson.Error(w, http.StatusForbidden, "Only teachers can list their notes")
		return
	}

	notes, err := h.Notes.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		h.Log.Error("listing teacher notes", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	classrooms, err := h.Classrooms.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		h.Log.Error("listing teacher classrooms", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Write(w, http.StatusOK, buildViews(notes, classrooms))
}

// HandleListForStudent handles GET /api/notes/student: notes from the
// student's approved classrooms, newest first.
func (h *Handler) HandleListForStudent(w http.ResponseWriter, r *http.Request) {
	role, _, studentID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleStudent {
		httpjson.Error(w, http.StatusForbidden, "Only students have a notes feed")
		return
	}

	classrooms, err := h.Classrooms.ListApprovedFor(r.Context(), studentID)
	if err != nil {
		h.Log.Error("listing approved classrooms", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	ids := make([]primitive.ObjectID, 0, len(classrooms))
	for _, cls := range classrooms {
		ids = append(ids, cls.ID)
	}

	notes, err := h.Notes.ListByClassroomIDs(r.Context(), ids)
	if err != nil {
		h.Log.Error("listing student notes", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Write(w, http.StatusOK, buildViews(notes, classrooms))
}

// authoredNote loads a note and checks the caller wrote it.
func (h *Handler) authoredNote(w http.ResponseWriter, r *http.Request) (models.Note, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Note not found")
		return models.Note{}, false
	}

	note, err := h.Notes.GetByID(r.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Note not found")
		return models.Note{}, false
	}
	if err != nil {
		h.Log.Error("loading note", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return models.Note{}, false
	}
	if !classroompolicy.CanManageContent(r, note.TeacherID) {
		httpjson.Error(w, http.StatusForbidden, "Unauthorized to modify this note")
		return models.Note{}, false
	}
	return note, true
}

// HandleUpdate handles PUT /api/notes/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authoredNote(w, r)
	if !ok {
		return
	}

	var form noteForm
	if err := httpjson.Decode(w, r, &form); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.FileURL == "" {
		httpjson.Error(w, http.StatusBadRequest, "File URL is required.")
		return
	}

	if err := h.Notes.Update(r.Context(), note.ID, form.Heading, form.FileURL); err != nil {
		h.Log.Error("updating note", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update note.")
		return
	}

	updated, err := h.Notes.GetByID(r.Context(), note.ID)
	if err != nil {
		h.Log.Error("reloading note", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update note.")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/notes/{id}. The referenced file is only
// removed when it lives in this service's blob store; external links are
// left alone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authoredNote(w, r)
	if !ok {
		return
	}

	if _, err := h.Notes.Delete(r.Context(), note.ID); err != nil {
		h.Log.Error("deleting note", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}
	if err := h.Blobs.Delete(note.FileURL); err != nil && !errors.Is(err, blobstore.ErrNotManaged) {
		h.Log.Warn("deleting note file", zap.String("url", note.FileURL), zap.Error(err))
	}

	httpjson.Message(w, http.StatusOK, "Note deleted successfully!")
}
