// internal/domain/models/classroom.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom is a teacher-owned class identified by semester/batch/subject.
//
// The pending and approved rosters live on the classroom document itself so
// that membership transitions can be expressed as single conditional updates.
// A student id appears in at most one of the two arrays; approve moves the id
// between them in one update so the arrays never intersect.
type Classroom struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Semester    string             `bson:"semester" json:"semester"`
	SemesterCI  string             `bson:"semester_ci" json:"-"`
	Batch       string             `bson:"batch" json:"batch"`
	BatchCI     string             `bson:"batch_ci" json:"-"`
	Subject     string             `bson:"subject" json:"subject"`
	SubjectCI   string             `bson:"subject_ci" json:"-"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	TeacherName string             `bson:"teacher_name" json:"teacher_name"`

	PendingStudentIDs  []primitive.ObjectID `bson:"pending_student_ids" json:"pending_student_ids"`
	ApprovedStudentIDs []primitive.ObjectID `bson:"approved_student_ids" json:"approved_student_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
