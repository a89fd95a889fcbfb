// internal/app/store/announcements/announcementstore.go
package announcementstore

import (
	"context"
	"time"

	"github.com/dalemusser/educonnect/internal/app/system/htmlsanitize"
	"github.com/dalemusser/educonnect/internal/app/system/normalize"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("announcements")}
}

// Create inserts an announcement. Heading is plain text; the body may carry
// basic formatting and is sanitized before storage.
func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Heading = htmlsanitize.PlainText(normalize.Field(a.Heading))
	a.Text = htmlsanitize.Sanitize(a.Text)
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// GetByID loads an announcement by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Announcement, error) {
	var a models.Announcement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// ListByTeacher returns the teacher's announcements, newest first.
func (s *Store) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Announcement, error) {
	return s.list(ctx, bson.M{"teacher_id": teacherID})
}

// ListByClassroomIDs returns announcements for the given classrooms, newest
// first. An empty id list yields an empty result, never a full scan.
func (s *Store) ListByClassroomIDs(ctx context.Context, classroomIDs []primitive.ObjectID) ([]models.Announcement, error) {
	if len(classroomIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"classroom_id": bson.M{"$in": classroomIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var anns []models.Announcement
	if err := cur.All(ctx, &anns); err != nil {
		return nil, err
	}
	return anns, nil
}

// UpdateContent replaces heading and text. When replaceImage is true the
// image URL is set to imageURL (possibly empty, clearing it).
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, heading, text string, replaceImage bool, imageURL string) error {
	set := bson.M{
		"heading":    htmlsanitize.PlainText(normalize.Field(heading)),
		"text":       htmlsanitize.Sanitize(text),
		"updated_at": time.Now().UTC(),
	}
	if replaceImage {
		set["image_url"] = imageURL
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes an announcement by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
