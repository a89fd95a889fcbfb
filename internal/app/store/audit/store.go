// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Membership actions
const (
	ActionRequested = "requested"
	ActionApproved  = "approved"
	ActionDeclined  = "declined"
	ActionRemoved   = "removed"
)

// Store records the membership event trail. Rosters themselves carry no
// timestamps, so this collection is the only ordered record of who requested
// or decided what, and when.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("membership_events")}
}

// Record appends one membership event. Audit writes are advisory: callers
// log failures but do not roll back the transition they describe.
func (s *Store) Record(ctx context.Context, classroomID, studentID, actorID primitive.ObjectID, action string) error {
	ev := models.MembershipEvent{
		ID:          primitive.NewObjectID(),
		ClassroomID: classroomID,
		StudentID:   studentID,
		ActorID:     actorID,
		Action:      action,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// ListByClassroom returns the classroom's events, newest first.
func (s *Store) ListByClassroom(ctx context.Context, classroomID primitive.ObjectID) ([]models.MembershipEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"classroom_id": classroomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.MembershipEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
