// internal/app/features/announcements/list.go
package announcements

import (
	"net/http"
	"time"

	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// announcementView joins an announcement with its classroom's details, the
// shape both list endpoints return.
type announcementView struct {
	ID          string    `json:"id"`
	Heading     string    `json:"heading"`
	Text        string    `json:"text,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	TeacherName string    `json:"teacher_name"`
	Subject     string    `json:"subject"`
	Semester    string    `json:"semester"`
	Batch       string    `json:"batch"`
	CreatedAt   time.Time `json:"created_at"`
}

// classDetails indexes classrooms by id for joining into list responses.
func classDetails(classrooms []models.Classroom) map[primitive.ObjectID]models.Classroom {
	m := make(map[primitive.ObjectID]models.Classroom, len(classrooms))
	for _, cls := range classrooms {
		m[cls.ID] = cls
	}
	return m
}

func buildViews(anns []models.Announcement, classes map[primitive.ObjectID]models.Classroom) []announcementView {
	out := make([]announcementView, 0, len(anns))
	for _, a := range anns {
		cls := classes[a.ClassroomID]
		out = append(out, announcementView{
			ID:          a.ID.Hex(),
			Heading:     a.Heading,
			Text:        a.Text,
			ImageURL:    a.ImageURL,
			TeacherName: cls.TeacherName,
			Subject:     cls.Subject,
			Semester:    cls.Semester,
			Batch:       cls.Batch,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out
}

// HandleListMine handles GET /api/announcements, the teacher's own
// announcements with class details, newest first.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	role, _, teacherID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		httpjson.Error(w, http.StatusForbidden, "Only teachers can list their announcements")
		return
	}

	anns, err := h.Announcements.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		h.Log.Error("listing teacher announcements", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching announcements")
		return
	}
	classrooms, err := h.Classrooms.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		h.Log.Error("listing teacher classrooms", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching announcements")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":       "Announcements fetched successfully",
		"announcements": buildViews(anns, classDetails(classrooms)),
	})
}

// HandleListForStudent handles GET /api/announcements/student: the feed of
// announcements from the student's approved classrooms, newest first.
func (h *Handler) HandleListForStudent(w http.ResponseWriter, r *http.Request) {
	role, _, studentID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleStudent {
		httpjson.Error(w, http.StatusForbidden, "Only students have an announcement feed")
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

	anns, err := h.Announcements.ListByClassroomIDs(r.Context(), ids)
	if err != nil {
		h.Log.Error("listing student announcements", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Write(w, http.StatusOK, buildViews(anns, classDetails(classrooms)))
}
