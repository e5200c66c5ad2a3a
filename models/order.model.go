package models

import "gorm.io/gorm"

// PaymentOrder statuses. Only pending -> succeeded is ever produced;
// failed and refunded are reserved in the schema for future use.
const (
	OrderStatusPending   = "pending"
	OrderStatusSucceeded = "succeeded"
	OrderStatusFailed    = "failed"
	OrderStatusRefunded  = "refunded"
)

// PaymentOrder records a gateway-side payment attempt for a course enrollment.
type PaymentOrder struct {
	gorm.Model
	StudentID        uint    `gorm:"not null;index" json:"student_id"`
	CourseID         uint    `gorm:"not null;index" json:"course_id"`
	TeacherID        uint    `gorm:"not null;index" json:"teacher_id"`
	Amount           uint    `gorm:"not null" json:"amount"` // whole currency units
	Currency         string  `gorm:"not null;default:'INR'" json:"currency"`
	GatewayOrderID   string  `gorm:"uniqueIndex;not null" json:"gateway_order_id"`
	GatewayPaymentID *string `gorm:"uniqueIndex" json:"gateway_payment_id,omitempty"`
	Status           string  `gorm:"not null;default:'pending'" json:"status"`
	Enrolled         bool    `gorm:"default:false" json:"enrolled"`
	IsDeleted        bool    `gorm:"default:false" json:"-"`
}
