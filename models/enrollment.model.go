package models

import "gorm.io/gorm"

// Enrollment statuses
const (
	EnrollmentActive  = "active"
	EnrollmentPending = "pending"
)

// Enrollment is the access grant linking one student to one course.
// The unique (student, course) index is the authoritative guard against
// double enrollment; both enrollment paths tolerate the resulting conflict.
type Enrollment struct {
	gorm.Model
	StudentID      uint   `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"student_id"`
	CourseID       uint   `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"course_id"`
	TeacherID      uint   `gorm:"not null;index" json:"teacher_id"`
	Status         string `gorm:"not null;default:'active'" json:"status"` // active, pending
	PaymentOrderID *uint  `gorm:"index" json:"payment_order_id,omitempty"`
	IsDeleted      bool   `gorm:"default:false" json:"-"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
