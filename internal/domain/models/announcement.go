// internal/domain/models/announcement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a classroom-scoped post by the owning teacher.
// Visibility for students is derived from the classroom's approved roster,
// never stored here.
type Announcement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassroomID primitive.ObjectID `bson:"classroom_id" json:"classroom_id"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	Heading     string             `bson:"heading" json:"heading"`
	Text        string             `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
