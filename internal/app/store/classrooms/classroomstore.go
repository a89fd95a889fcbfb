// internal/app/store/classrooms/classroomstore.go
package classroomstore

// Terminology: rosters
//   - pending_student_ids: students who requested to join and await a decision
//   - approved_student_ids: students accepted by the owning teacher
// A student id lives in at most one of the two arrays per classroom.

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/educonnect/internal/app/system/normalize"
	"github.com/dalemusser/educonnect/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classrooms")}
}

var (
	// ErrDuplicateClassroom is returned when the (semester, batch, subject)
	// tuple already exists for the same teacher.
	ErrDuplicateClassroom = errors.New("classroom already exists")

	// ErrAlreadyPending is returned when a student re-requests a classroom
	// they are already pending on.
	ErrAlreadyPending = errors.New("join request already sent")

	// ErrAlreadyApproved is returned when an approved student requests to
	// join again without having been removed first.
	ErrAlreadyApproved = errors.New("student is already approved")

	// ErrNotPending is returned by Approve/Decline when the student has no
	// pending request (never requested, or the request was already decided).
	ErrNotPending = errors.New("student did not request to join")

	// ErrNotApproved is returned by RemoveApproved when the student is not
	// on the approved roster.
	ErrNotApproved = errors.New("student is not in this classroom")
)

// Create inserts a classroom after normalizing fields. The unique index on
// (semester_ci, batch_ci, subject_ci, teacher_id) makes the duplicate check
// and the insert one logical operation: two concurrent creates of the same
// tuple cannot both succeed.
func (s *Store) Create(ctx context.Context, cls models.Classroom) (models.Classroom, error) {
	now := time.Now().UTC()
	cls.ID = primitive.NewObjectID()
	cls.Semester = normalize.Field(cls.Semester)
	cls.SemesterCI = text.Fold(cls.Semester)
	cls.Batch = normalize.Field(cls.Batch)
	cls.BatchCI = text.Fold(cls.Batch)
	cls.Subject = normalize.Field(cls.Subject)
	cls.SubjectCI = text.Fold(cls.Subject)
	if cls.PendingStudentIDs == nil {
		cls.PendingStudentIDs = []primitive.ObjectID{}
	}
	if cls.ApprovedStudentIDs == nil {
		cls.ApprovedStudentIDs = []primitive.ObjectID{}
	}
	cls.CreatedAt = now
	cls.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cls); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Classroom{}, ErrDuplicateClassroom
		}
		return models.Classroom{}, err
	}
	return cls, nil
}

// GetByID loads a classroom by ObjectID.
// Returns mongo.ErrNoDocuments if it does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Classroom, error) {
	var cls models.Classroom
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cls); err != nil {
		return models.Classroom{}, err
	}
	return cls, nil
}

// ListByTeacher returns all classrooms owned by the teacher.
func (s *Store) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Classroom, error) {
	return s.list(ctx, bson.M{"teacher_id": teacherID})
}

// ListJoinable returns classrooms the student has not been approved into.
// Classrooms the student is still pending on remain listed; the request
// endpoint rejects duplicates.
func (s *Store) ListJoinable(ctx context.Context, studentID primitive.ObjectID) ([]models.Classroom, error) {
	return s.list(ctx, bson.M{"approved_student_ids": bson.M{"$ne": studentID}})
}

// ListApprovedFor returns classrooms where the student is on the approved roster.
func (s *Store) ListApprovedFor(ctx context.Context, studentID primitive.ObjectID) ([]models.Classroom, error) {
	return s.list(ctx, bson.M{"approved_student_ids": studentID})
}

// ApprovedClassroomIDs resolves just the ids of a student's approved
// classrooms, for content-feed filtering.
func (s *Store) ApprovedClassroomIDs(ctx context.Context, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"approved_student_ids": studentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Classroom, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var classrooms []models.Classroom
	if err := cur.All(ctx, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

/*
Membership transitions.

Each transition is a single conditional UpdateOne whose filter encodes the
required current state. Concurrent calls cannot interleave a read-modify-write:
whichever update matches first wins, the loser matches zero documents and
reports the precondition failure. Approve pulls from pending and pushes to
approved in the same update, so pending ∩ approved stays empty at all times.
*/

// RequestJoin moves (classroom, student) from NONE to PENDING.
func (s *Store) RequestJoin(ctx context.Context, classroomID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                  classroomID,
			"pending_student_ids":  bson.M{"$ne": studentID},
			"approved_student_ids": bson.M{"$ne": studentID},
		},
		bson.M{
			"$addToSet": bson.M{"pending_student_ids": studentID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyRequestFailure(ctx, classroomID, studentID)
	}
	return nil
}

// classifyRequestFailure distinguishes why a RequestJoin filter missed:
// unknown classroom, already approved, or already pending.
func (s *Store) classifyRequestFailure(ctx context.Context, classroomID, studentID primitive.ObjectID) error {
	cls, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return err // mongo.ErrNoDocuments for an unknown classroom
	}
	for _, id := range cls.ApprovedStudentIDs {
		if id == studentID {
			return ErrAlreadyApproved
		}
	}
	for _, id := range cls.PendingStudentIDs {
		if id == studentID {
			return ErrAlreadyPending
		}
	}
	// The blocking entry disappeared between the update and this read; the
	// caller can simply retry.
	return ErrAlreadyPending
}

// Approve moves (classroom, student) from PENDING to APPROVED.
// Ownership must be checked by the caller before invoking this.
func (s *Store) Approve(ctx context.Context, classroomID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": classroomID, "pending_student_ids": studentID},
		bson.M{
			"$pull":     bson.M{"pending_student_ids": studentID},
			"$addToSet": bson.M{"approved_student_ids": studentID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyDecisionFailure(ctx, classroomID)
	}
	return nil
}

// Decline moves (classroom, student) from PENDING back to NONE.
func (s *Store) Decline(ctx context.Context, classroomID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": classroomID, "pending_student_ids": studentID},
		bson.M{
			"$pull": bson.M{"pending_student_ids": studentID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyDecisionFailure(ctx, classroomID)
	}
	return nil
}

// RemoveApproved moves (classroom, student) from APPROVED back to NONE.
func (s *Store) RemoveApproved(ctx context.Context, classroomID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": classroomID, "approved_student_ids": studentID},
		bson.M{
			"$pull": bson.M{"approved_student_ids": studentID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, classroomID); err != nil {
			return err
		}
		return ErrNotApproved
	}
	return nil
}

func (s *Store) classifyDecisionFailure(ctx context.Context, classroomID primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, classroomID); err != nil {
		return err
	}
	return ErrNotPending
}
