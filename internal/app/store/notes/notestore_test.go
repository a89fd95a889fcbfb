package notestore_test

import (
	"testing"

	notestore "github.com/dalemusser/educonnect/internal/app/store/notes"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"github.com/dalemusser/educonnect/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")

	n, err := store.Create(ctx, models.Note{
		ClassroomID: cls.ID,
		TeacherID:   teacher.ID,
		Heading:     " <i>Chapter 3</i> slides ",
		FileURL:     " /uploads/ch3.pdf ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Heading != "Chapter 3 slides" {
		t.Errorf("heading = %q", n.Heading)
	}
	if n.FileURL != "/uploads/ch3.pdf" {
		t.Errorf("file url = %q", n.FileURL)
	}

	got, err := store.GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ClassroomID != cls.ID || got.TeacherID != teacher.ID {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestListByTeacherAndClassrooms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	other := fixtures.CreateTeacher(ctx, "Lee Ortiz", "lee@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	otherCls := fixtures.CreateClassroom(ctx, other, "Fall 2026", "B1", "Biology")

	mine := fixtures.CreateNote(ctx, cls.ID, teacher.ID, "mine", "/uploads/a.pdf")
	fixtures.CreateNote(ctx, otherCls.ID, other.ID, "theirs", "/uploads/b.pdf")

	byTeacher, err := store.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(byTeacher) != 1 || byTeacher[0].ID != mine.ID {
		t.Errorf("ListByTeacher = %v, want just %q", byTeacher, mine.Heading)
	}

	byClassroom, err := store.ListByClassroomIDs(ctx, []primitive.ObjectID{cls.ID})
	if err != nil {
		t.Fatalf("ListByClassroomIDs: %v", err)
	}
	if len(byClassroom) != 1 || byClassroom[0].ID != mine.ID {
		t.Errorf("ListByClassroomIDs = %v, want just %q", byClassroom, mine.Heading)
	}

	none, err := store.ListByClassroomIDs(ctx, nil)
	if err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if none != nil {
		t.Errorf("empty ids should yield nil, got %v", none)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	n := fixtures.CreateNote(ctx, cls.ID, teacher.ID, "old", "/uploads/old.pdf")

	if err := store.Update(ctx, n.ID, "new", "/uploads/new.pdf"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Heading != "new" || got.FileURL != "/uploads/new.pdf" {
		t.Errorf("not updated: %q %q", got.Heading, got.FileURL)
	}

	deleted, err := store.Delete(ctx, n.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d, want 1", deleted)
	}
	deleted, _ = store.Delete(ctx, n.ID)
	if deleted != 0 {
		t.Errorf("second delete removed %d, want 0", deleted)
	}
}
