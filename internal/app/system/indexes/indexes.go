// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The two unique indexes are load-bearing, not advisory:
  - users.email_ci backs duplicate-signup detection, and
  - the classroom (semester,batch,subject,teacher) tuple makes the
    create-classroom uniqueness check and insert one logical operation
    even under concurrent requests.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureClassrooms(ctx, db); err != nil {
		problems = append(problems, "classrooms: "+err.Error())
	}
	if err := ensureAnnouncements(ctx, db); err != nil {
		problems = append(problems, "announcements: "+err.Error())
	}
	if err := ensureNotes(ctx, db); err != nil {
		problems = append(problems, "notes: "+err.Error())
	}
	if err := ensureMembershipEvents(ctx, db); err != nil {
		problems = append(problems, "membership_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("role"),
		},
	})
}

func ensureClassrooms(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db.Collection("classrooms"), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "semester_ci", Value: 1},
				{Key: "batch_ci", Value: 1},
				{Key: "subject_ci", Value: 1},
				{Key: "teacher_id", Value: 1},
			},
			Options: options.Index().SetName("uniq_semester_batch_subject_teacher").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}},
			Options: options.Index().SetName("teacher_id"),
		},
		{
			Keys:    bson.D{{Key: "approved_student_ids", Value: 1}},
			Options: options.Index().SetName("approved_student_ids"),
		},
		{
			Keys:    bson.D{{Key: "pending_student_ids", Value: 1}},
			Options: options.Index().SetName("pending_student_ids"),
		},
	})
}

func ensureAnnouncements(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db.Collection("announcements"), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "classroom_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("classroom_created"),
		},
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}},
			Options: options.Index().SetName("teacher_id"),
		},
	})
}

func ensureNotes(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db.Collection("notes"), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "classroom_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("classroom_created"),
		},
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}},
			Options: options.Index().SetName("teacher_id"),
		},
	})
}

func ensureMembershipEvents(ctx context.Context, db *mongo.Database) error {
	return ensureSet(ctx, db.Collection("membership_events"), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "classroom_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("classroom_created"),
		},
	})
}
