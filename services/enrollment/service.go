package enrollment

import (
	"errors"
	"lms/models"
	"lms/services/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrOrderNotFound     = errors.New("payment order not found")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)

// Outcome tags the result of an enrollment attempt so the transport layer
// decides how to report soft rejections.
type Outcome string

const (
	OutcomeEnrolled         Outcome = "enrolled"
	OutcomeAlreadyEnrolled  Outcome = "already_enrolled"
	OutcomeSelfEnrollment   Outcome = "self_enrollment"
	OutcomeCheckoutRequired Outcome = "checkout_required"
)

// Checkout carries what the browser needs to drive the gateway widget.
type Checkout struct {
	OrderID  string `json:"orderId"`
	Amount   uint   `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Result is the tagged outcome of Enroll.
type Result struct {
	Outcome    Outcome            `json:"outcome"`
	Enrollment *models.Enrollment `json:"enrolled,omitempty"`
	Checkout   *Checkout          `json:"checkout,omitempty"`
}

// Callback is the client-relayed gateway checkout callback.
type Callback struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Service orchestrates free and paid enrollment.
type Service struct {
	db      *gorm.DB
	gateway *payment.Gateway
}

func NewService(db *gorm.DB, gateway *payment.Gateway) *Service {
	return &Service{db: db, gateway: gateway}
}

// Enroll enrolls a student into a free course directly, or creates a pending
// payment order for a priced one. The paid path never creates an Enrollment.
func (s *Service) Enroll(studentID, courseID uint) (*Result, error) {
	var course models.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if course.TeacherID == studentID {
		return &Result{Outcome: OutcomeSelfEnrollment}, nil
	}

	var existing models.Enrollment
	if err := s.db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		First(&existing).Error; err == nil {
		return &Result{Outcome: OutcomeAlreadyEnrolled, Enrollment: &existing}, nil
	}

	if course.IsFree() {
		return s.enrollFree(studentID, &course)
	}

	order, err := s.gateway.CreateOrder(course.Price)
	if err != nil {
		return nil, err
	}

	paymentOrder := models.PaymentOrder{
		StudentID:      studentID,
		CourseID:       course.ID,
		TeacherID:      course.TeacherID,
		Amount:         course.Price,
		Currency:       s.gateway.Currency(),
		GatewayOrderID: order.ID,
		Status:         models.OrderStatusPending,
	}
	if err := s.db.Create(&paymentOrder).Error; err != nil {
		return nil, err
	}

	return &Result{
		Outcome: OutcomeCheckoutRequired,
		Checkout: &Checkout{
			OrderID:  order.ID,
			Amount:   course.Price,
			Currency: s.gateway.Currency(),
			KeyID:    s.gateway.KeyID(),
		},
	}, nil
}

// enrollFree performs the idempotent upsert keyed on (student, course). A
// concurrent duplicate resolves to the already-stored row.
func (s *Service) enrollFree(studentID uint, course *models.Course) (*Result, error) {
	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
		TeacherID: course.TeacherID,
		Status:    models.EnrollmentActive,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"teacher_id", "status"}),
	}).Create(&enrollment).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller gets the canonical row either way.
	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, course.ID).First(&enrollment).Error; err != nil {
		return nil, err
	}

	return &Result{Outcome: OutcomeEnrolled, Enrollment: &enrollment}, nil
}

// VerifyPayment validates the gateway signature, then commits the order
// transition and the enrollment insert in a single transaction. A signature
// mismatch performs zero writes. A duplicate enrollment (student retried, or
// two checkouts raced) is a benign success, not an error.
func (s *Service) VerifyPayment(cb Callback) (*models.Enrollment, error) {
	if !s.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		return nil, ErrSignatureMismatch
	}

	var enrollment models.Enrollment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.Where("gateway_order_id = ? AND is_deleted = ?", cb.OrderID, false).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		paymentID := cb.PaymentID
		order.GatewayPaymentID = &paymentID
		order.Status = models.OrderStatusSucceeded
		order.Enrolled = true
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		orderID := order.ID
		enrollment = models.Enrollment{
			StudentID:      order.StudentID,
			CourseID:       order.CourseID,
			TeacherID:      order.TeacherID,
			Status:         models.EnrollmentActive,
			PaymentOrderID: &orderID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Where("student_id = ? AND course_id = ?", order.StudentID, order.CourseID).
					First(&enrollment).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}
