// Package classroompolicy provides authorization policies for classroom
// management.
//
// Authorization rules:
//   - Teachers can create classrooms and manage the rosters of the
//     classrooms they own
//   - Students can request to join classrooms and read content for the
//     classrooms they are approved into
//   - No role can decide membership for a classroom it does not own
package classroompolicy

import (
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanCreateClassroom reports whether the current user may create a classroom.
// Only teachers create classrooms, each owned by its creator.
func CanCreateClassroom(r *http.Request) bool {
	return authz.IsTeacher(r)
}

// CanManageRoster reports whether the current user may approve, decline,
// remove, or list the students of the given classroom. Only the owning
// teacher may; other teachers are treated like any outsider.
func CanManageRoster(r *http.Request, cls models.Classroom) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		return false
	}
	return cls.TeacherID == userID
}

// CanRequestJoin reports whether the current user may request to join a
// classroom. Only students join rosters.
func CanRequestJoin(r *http.Request) bool {
	return authz.IsStudent(r)
}

// CanViewStudentClassrooms reports whether the current user may list the
// approved classrooms of the given student. Students see only their own list.
func CanViewStudentClassrooms(r *http.Request, studentID primitive.ObjectID) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleStudent {
		return false
	}
	return userID == studentID
}

// CanManageContent reports whether the current user may edit or delete the
// given piece of classroom content. Only the authoring teacher may.
func CanManageContent(r *http.Request, authorID primitive.ObjectID) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok || role != authz.RoleTeacher {
		return false
	}
	return userID == authorID
}
