// internal/domain/models/membershipevent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipEvent records one membership transition for a classroom.
// The rosters on Classroom are sets with no ordering, so this trail is the
// only record of when a request was made or decided.
type MembershipEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassroomID primitive.ObjectID `bson:"classroom_id" json:"classroom_id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	ActorID     primitive.ObjectID `bson:"actor_id" json:"actor_id"`
	Action      string             `bson:"action" json:"action"` // requested | approved | declined | removed
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
