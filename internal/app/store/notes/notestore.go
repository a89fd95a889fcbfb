// internal/app/store/notes/notestore.go
package notestore

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
	return &Store{c: db.Collection("notes")}
}

// Create inserts a note.
func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	n.ID = primitive.NewObjectID()
	n.Heading = htmlsanitize.PlainText(normalize.Field(n.Heading))
	n.FileURL = normalize.Field(n.FileURL)
	n.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// GetByID loads a note by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Note, error) {
	var n models.Note
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// ListByTeacher returns the teacher's notes, newest first.
func (s *Store) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Note, error) {
	return s.list(ctx, bson.M{"teacher_id": teacherID})
}

// ListByClassroomIDs returns notes for the given classrooms, newest first.
func (s *Store) ListByClassroomIDs(ctx context.Context, classroomIDs []primitive.ObjectID) ([]models.Note, error) {
	if len(classroomIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"classroom_id": bson.M{"$in": classroomIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notes []models.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Update replaces heading and file URL.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, heading, fileURL string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"heading":  htmlsanitize.PlainText(normalize.Field(heading)),
		"file_url": normalize.Field(fileURL),
	}})
	return err
}

// Delete removes a note by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
