package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/educonnect/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixture1234",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTeacher creates a test teacher.
func (f *Fixtures) CreateTeacher(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "teacher")
}

// CreateStudent creates a test student.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "student")
}

// CreateClassroom creates a test classroom owned by the teacher.
func (f *Fixtures) CreateClassroom(ctx context.Context, teacher models.User, semester, batch, subject string) models.Classroom {
	f.t.Helper()

	now := time.Now().UTC()
	cls := models.Classroom{
		ID:                 primitive.NewObjectID(),
		Semester:           semester,
		SemesterCI:         text.Fold(semester),
		Batch:              batch,
		BatchCI:            text.Fold(batch),
		Subject:            subject,
		SubjectCI:          text.Fold(subject),
		TeacherID:          teacher.ID,
		TeacherName:        teacher.Name,
		PendingStudentIDs:  []primitive.ObjectID{},
		ApprovedStudentIDs: []primitive.ObjectID{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("classrooms").InsertOne(ctx, cls); err != nil {
		f.t.Fatalf("failed to create test classroom: %v", err)
	}
	return cls
}

// AddPending puts a student on the classroom's pending roster directly.
func (f *Fixtures) AddPending(ctx context.Context, classroomID, studentID primitive.ObjectID) {
	f.t.Helper()
	f.pushRoster(ctx, classroomID, "pending_student_ids", studentID)
}

// AddApproved puts a student on the classroom's approved roster directly.
func (f *Fixtures) AddApproved(ctx context.Context, classroomID, studentID primitive.ObjectID) {
	f.t.Helper()
	f.pushRoster(ctx, classroomID, "approved_student_ids", studentID)
}

func (f *Fixtures) pushRoster(ctx context.Context, classroomID primitive.ObjectID, field string, studentID primitive.ObjectID) {
	f.t.Helper()
	_, err := f.db.Collection("classrooms").UpdateByID(ctx, classroomID,
		bson.M{"$addToSet": bson.M{field: studentID}})
	if err != nil {
		f.t.Fatalf("failed to update roster %s: %v", field, err)
	}
}

// Classroom re-reads a classroom document for assertions.
func (f *Fixtures) Classroom(ctx context.Context, id primitive.ObjectID) models.Classroom {
	f.t.Helper()
	var cls models.Classroom
	if err := f.db.Collection("classrooms").FindOne(ctx, bson.M{"_id": id}).Decode(&cls); err != nil {
		f.t.Fatalf("failed to load classroom: %v", err)
	}
	return cls
}

// CreateAnnouncement creates a test announcement.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, classroomID, teacherID primitive.ObjectID, heading string) models.Announcement {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Announcement{
		ID:          primitive.NewObjectID(),
		ClassroomID: classroomID,
		TeacherID:   teacherID,
		Heading:     heading,
		Text:        "fixture text",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("announcements").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}
	return a
}

// CreateNote creates a test note.
func (f *Fixtures) CreateNote(ctx context.Context, classroomID, teacherID primitive.ObjectID, heading, fileURL string) models.Note {
	f.t.Helper()

	n := models.Note{
		ID:          primitive.NewObjectID(),
		ClassroomID: classroomID,
		TeacherID:   teacherID,
		Heading:     heading,
		FileURL:     fileURL,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("notes").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test note: %v", err)
	}
	return n
}
