// Package authz provides role and identity checks over the request principal.
//
// The system has exactly two roles: teacher and student. Every classroom
// mutation is gated on the teacher role plus ownership; student-facing reads
// are gated on the student role. Checks fail closed: a missing principal or
// malformed user id always reads as unauthenticated.
package authz

import (
	"net/http"

	"github.com/dalemusser/educonnect/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps a normalized role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// UserCtx returns the principal's role, name, Mongo ObjectID, and a found
// flag. If no principal is present, the role is unknown, or the user id is
// malformed, it returns ok=false. Callers can trust that ok=true means a
// valid, authenticated principal with a valid ObjectID and a known role.
func UserCtx(r *http.Request) (role Role, name string, userID primitive.ObjectID, ok bool) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	role, ok = ParseRole(p.Role)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		// Malformed id in a signed token indicates a minting bug; fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return role, p.Name, userID, true
}

// IsTeacher reports whether the current request's principal is a teacher.
func IsTeacher(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleTeacher
}

// IsStudent reports whether the current request's principal is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleStudent
}
