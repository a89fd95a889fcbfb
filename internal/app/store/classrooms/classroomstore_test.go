package classroomstore_test

import (
	"errors"
	"testing"

	classroomstore "github.com/dalemusser/educonnect/internal/app/store/classrooms"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"github.com/dalemusser/educonnect/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateNormalizesAndInitializesRosters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")

	cls, err := store.Create(ctx, models.Classroom{
		Semester:    "  Fall 2026 ",
		Batch:       "B1",
		Subject:     " Algebra ",
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cls.Semester != "Fall 2026" || cls.Subject != "Algebra" {
		t.Errorf("fields not trimmed: %q %q", cls.Semester, cls.Subject)
	}
	if cls.PendingStudentIDs == nil || cls.ApprovedStudentIDs == nil {
		t.Error("rosters should be initialized to empty arrays")
	}
	if len(cls.PendingStudentIDs) != 0 || len(cls.ApprovedStudentIDs) != 0 {
		t.Error("new classroom should have empty rosters")
	}
}

func TestCreateDuplicateTuple(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	other := fixtures.CreateTeacher(ctx, "Lee Ortiz", "lee@example.com")

	base := models.Classroom{
		Semester: "Fall 2026", Batch: "B1", Subject: "Algebra",
		TeacherID: teacher.ID, TeacherName: teacher.Name,
	}
	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Same tuple, differing only in case, for the same teacher.
	dup := base
	dup.Subject = "ALGEBRA"
	if _, err := store.Create(ctx, dup); !errors.Is(err, classroomstore.ErrDuplicateClassroom) {
		t.Errorf("duplicate create: got %v, want ErrDuplicateClassroom", err)
	}

	// A different teacher may reuse the tuple.
	base.TeacherID = other.ID
	base.TeacherName = other.Name
	if _, err := store.Create(ctx, base); err != nil {
		t.Errorf("same tuple for other teacher: %v", err)
	}
}

func TestRequestJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")

	if err := store.RequestJoin(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.PendingStudentIDs) != 1 || got.PendingStudentIDs[0] != student.ID {
		t.Errorf("pending roster = %v, want [%s]", got.PendingStudentIDs, student.ID.Hex())
	}

	// Second request while pending.
	if err := store.RequestJoin(ctx, cls.ID, student.ID); !errors.Is(err, classroomstore.ErrAlreadyPending) {
		t.Errorf("duplicate request: got %v, want ErrAlreadyPending", err)
	}
	got = fixtures.Classroom(ctx, cls.ID)
	if len(got.PendingStudentIDs) != 1 {
		t.Errorf("duplicate request changed the roster: %v", got.PendingStudentIDs)
	}
}

func TestRequestJoinWhileApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.AddApproved(ctx, cls.ID, student.ID)

	if err := store.RequestJoin(ctx, cls.ID, student.ID); !errors.Is(err, classroomstore.ErrAlreadyApproved) {
		t.Errorf("request while approved: got %v, want ErrAlreadyApproved", err)
	}
	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.PendingStudentIDs) != 0 {
		t.Errorf("approved student must not land on pending: %v", got.PendingStudentIDs)
	}
}

func TestRequestJoinUnknownClassroom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.RequestJoin(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("unknown classroom: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestApproveMovesBetweenRosters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.AddPending(ctx, cls.ID, student.ID)

	if err := store.Approve(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.PendingStudentIDs) != 0 {
		t.Errorf("pending roster not emptied: %v", got.PendingStudentIDs)
	}
	if len(got.ApprovedStudentIDs) != 1 || got.ApprovedStudentIDs[0] != student.ID {
		t.Errorf("approved roster = %v, want [%s]", got.ApprovedStudentIDs, student.ID.Hex())
	}
}

func TestApproveWithoutPendingRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")

	if err := store.Approve(ctx, cls.ID, student.ID); !errors.Is(err, classroomstore.ErrNotPending) {
		t.Errorf("approve without request: got %v, want ErrNotPending", err)
	}
}

func TestApproveAfterDecline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.AddPending(ctx, cls.ID, student.ID)

	if err := store.Decline(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("Decline: %v", err)
	}

	// The decision already landed; a second decision must fail.
	if err := store.Approve(ctx, cls.ID, student.ID); !errors.Is(err, classroomstore.ErrNotPending) {
		t.Errorf("approve after decline: got %v, want ErrNotPending", err)
	}
	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.ApprovedStudentIDs) != 0 {
		t.Errorf("declined student ended up approved: %v", got.ApprovedStudentIDs)
	}
}

func TestDeclineLeavesApprovedUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	pending := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	approved := fixtures.CreateStudent(ctx, "Ana Reyes", "ana@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.AddPending(ctx, cls.ID, pending.ID)
	fixtures.AddApproved(ctx, cls.ID, approved.ID)

	if err := store.Decline(ctx, cls.ID, pending.ID); err != nil {
		t.Fatalf("Decline: %v", err)
	}

	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.ApprovedStudentIDs) != 1 || got.ApprovedStudentIDs[0] != approved.ID {
		t.Errorf("decline touched the approved roster: %v", got.ApprovedStudentIDs)
	}
	if len(got.PendingStudentIDs) != 0 {
		t.Errorf("pending roster not emptied: %v", got.PendingStudentIDs)
	}
}

func TestRemoveApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.AddApproved(ctx, cls.ID, student.ID)

	if err := store.RemoveApproved(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("RemoveApproved: %v", err)
	}
	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.ApprovedStudentIDs) != 0 {
		t.Errorf("approved roster not emptied: %v", got.ApprovedStudentIDs)
	}

	// Removing again fails; the student is no longer on the roster.
	if err := store.RemoveApproved(ctx, cls.ID, student.ID); !errors.Is(err, classroomstore.ErrNotApproved) {
		t.Errorf("second remove: got %v, want ErrNotApproved", err)
	}
}

func TestMembershipLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")
	cls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")

	// request -> approve -> remove -> request again
	if err := store.RequestJoin(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if err := store.Approve(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := store.RemoveApproved(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("RemoveApproved: %v", err)
	}
	if err := store.RequestJoin(ctx, cls.ID, student.ID); err != nil {
		t.Fatalf("re-request after removal: %v", err)
	}

	got := fixtures.Classroom(ctx, cls.ID)
	if len(got.PendingStudentIDs) != 1 || len(got.ApprovedStudentIDs) != 0 {
		t.Errorf("after lifecycle: pending=%v approved=%v", got.PendingStudentIDs, got.ApprovedStudentIDs)
	}

	// At no point may a student sit on both rosters.
	for _, p := range got.PendingStudentIDs {
		for _, a := range got.ApprovedStudentIDs {
			if p == a {
				t.Errorf("student %s on both rosters", p.Hex())
			}
		}
	}
}

func TestListJoinable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")

	open := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	pendingCls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Biology")
	approvedCls := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Chemistry")
	fixtures.AddPending(ctx, pendingCls.ID, student.ID)
	fixtures.AddApproved(ctx, approvedCls.ID, student.ID)

	list, err := store.ListJoinable(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListJoinable: %v", err)
	}

	ids := map[primitive.ObjectID]bool{}
	for _, c := range list {
		ids[c.ID] = true
	}
	if !ids[open.ID] {
		t.Error("open classroom missing from joinable list")
	}
	if !ids[pendingCls.ID] {
		t.Error("pending classroom should still be listed as joinable")
	}
	if ids[approvedCls.ID] {
		t.Error("approved classroom must not be listed as joinable")
	}
}

func TestListApprovedForAndIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Pat Kim", "pat@example.com")

	in := fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Algebra")
	fixtures.CreateClassroom(ctx, teacher, "Fall 2026", "B1", "Biology")
	fixtures.AddApproved(ctx, in.ID, student.ID)

	list, err := store.ListApprovedFor(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListApprovedFor: %v", err)
	}
	if len(list) != 1 || list[0].ID != in.ID {
		t.Errorf("ListApprovedFor = %v, want just %s", list, in.ID.Hex())
	}

	ids, err := store.ApprovedClassroomIDs(ctx, student.ID)
	if err != nil {
		t.Fatalf("ApprovedClassroomIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != in.ID {
		t.Errorf("ApprovedClassroomIDs = %v, want [%s]", ids, in.ID.Hex())
	}
}

func TestListByTeacher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classroomstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := fixtures.CreateTeacher(ctx, "Dana Fields", "dana@example.com")
	other := fixtures.CreateTeacher(ctx, "Lee Ortiz", "lee@example.com")
	fixtures.CreateClassroom(ctx, mine, "Fall 2026", "B1", "Algebra")
	fixtures.CreateClassroom(ctx, mine, "Fall 2026", "B2", "Algebra")
	fixtures.CreateClassroom(ctx, other, "Fall 2026", "B1", "Biology")

	list, err := store.ListByTeacher(ctx, mine.ID)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d classrooms, want 2", len(list))
	}
	for _, c := range list {
		if c.TeacherID != mine.ID {
			t.Errorf("classroom %s owned by %s", c.ID.Hex(), c.TeacherID.Hex())
		}
	}
}
