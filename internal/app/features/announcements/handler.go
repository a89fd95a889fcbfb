// internal/app/features/announcements/handler.go
package announcements

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	announcementstore "github.com/dalemusser/educonnect/internal/app/store/announcements"
	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	"github.com/dalemusser/educonnect/internal/app/system/blobstore"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the announcements feature.
type Handler struct {
	Announcements *announcementstore.Store
	Classrooms    *classroomstore.Store
	Blobs         *blobstore.Local
	Log           *zap.Logger
}

// NewHandler constructs an announcements Handler.
func NewHandler(db *mongo.Database, blobs *blobstore.Local, logger *zap.Logger) *Handler {
	return &Handler{
		Announcements: announcementstore.New(db),
		Classrooms:    classroomstore.New(db),
		Blobs:         blobs,
		Log:           logger,
	}
}

// maxImageBytes caps uploaded announcement images.
const maxImageBytes = 10 << 20

// announcementForm is the payload for create and edit. Submitted either as
// JSON or as a multipart form with an optional "image" file part.
type announcementForm struct {
	ClassroomID string `json:"classroom_id"`
	Heading     string `json:"heading"`
	Text        string `json:"text"`

	imageData []byte
	imageExt  string
	hasImage  bool
}

func readImagePart(file multipart.File, header *multipart.FileHeader) ([]byte, string, error) {
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, "", err
	}
	return data, strings.ToLower(filepath.Ext(header.Filename)), nil
}

// storeImage writes the uploaded image, if any, and returns its URL.
func (h *Handler) storeImage(form *announcementForm) (string, error) {
	if !form.hasImage {
		return "", nil
	}
	return h.Blobs.Store(form.imageData, form.imageExt)
}

// deleteImage removes a stored image, logging failures. Blob cleanup is
// best effort; the document is the source of truth.
func (h *Handler) deleteImage(url string) {
	if url == "" {
		return
	}
	if err := h.Blobs.Delete(url); err != nil {
		h.Log.Warn("deleting announcement image", zap.String("url", url), zap.Error(err))
	}
}

func urlAnnouncementID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}
