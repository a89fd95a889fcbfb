// internal/app/features/classrooms/handler.go
package classrooms

import (
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/store/audit"
	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	userstore "github.com/dalemusser/educonnect/internal/app/store/users"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the classrooms feature:
// the registry, the membership state machine, and the audit trail.
type Handler struct {
	Classrooms *classroomstore.Store
	Users      *userstore.Store
	Audit      *audit.Store
	Log        *zap.Logger
}

// NewHandler constructs a classrooms Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Classrooms: classroomstore.New(db),
		Users:      userstore.New(db),
		Audit:      audit.New(db),
		Log:        logger,
	}
}

// urlObjectID parses a chi URL parameter as an ObjectID. On failure it
// answers 404 with notFoundMsg (a malformed id can never name a document)
// and returns ok=false.
func urlObjectID(w http.ResponseWriter, r *http.Request, param, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		httpjson.Message(w, http.StatusNotFound, notFoundMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}

// recordEvent appends a membership audit event. Audit failures are logged,
// never surfaced: the transition they describe has already committed.
func (h *Handler) recordEvent(r *http.Request, classroomID, studentID, actorID primitive.ObjectID, action string) {
	if err := h.Audit.Record(r.Context(), classroomID, studentID, actorID, action); err != nil {
		h.Log.Error("recording membership event",
			zap.String("action", action),
			zap.String("classroom_id", classroomID.Hex()),
			zap.Error(err))
	}
}
