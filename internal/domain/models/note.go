// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a shared link (lecture notes, assignment brief) scoped to a classroom.
type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassroomID primitive.ObjectID `bson:"classroom_id" json:"classroom_id"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	Heading     string             `bson:"heading" json:"heading"`
	FileURL     string             `bson:"file_url" json:"file_url"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
