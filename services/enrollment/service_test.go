package enrollment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/models"
	"lms/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test_key_secret"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func setupGateway(t *testing.T, orderID string) *payment.Gateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"amount":49900,"currency":"INR","status":"created"}`, orderID)
	}))
	t.Cleanup(srv.Close)
	return payment.NewGateway(payment.Config{
		KeyID:     "rzp_test_key",
		KeySecret: testSecret,
		BaseURL:   srv.URL,
	})
}

func createCourse(t *testing.T, db *gorm.DB, teacherID uint, price uint) models.Course {
	t.Helper()
	course := models.Course{
		TeacherID:   teacherID,
		CategoryID:  1,
		Title:       "Test Course",
		Level:       models.LevelBeginner,
		Price:       price,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestEnrollFreeCourse(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_free"))
	course := createCourse(t, db, 1, 0)

	result, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEnrolled, result.Outcome)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, uint(2), result.Enrollment.StudentID)
	assert.Equal(t, models.EnrollmentActive, result.Enrollment.Status)
	assert.Nil(t, result.Checkout)

	var count int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", 2, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollFreeCourseTwiceIsIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_free"))
	course := createCourse(t, db, 1, 0)

	first, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeEnrolled, first.Outcome)

	second, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyEnrolled, second.Outcome)
	require.NotNil(t, second.Enrollment)
	assert.Equal(t, first.Enrollment.ID, second.Enrollment.ID)

	var count int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", 2, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollOwnCourseRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_self"))
	course := createCourse(t, db, 7, 0)

	result, err := svc.Enroll(7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelfEnrollment, result.Outcome)

	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_missing"))

	_, err := svc.Enroll(2, 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollPaidCourseCreatesPendingOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_paid_1"))
	course := createCourse(t, db, 1, 499)

	result, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckoutRequired, result.Outcome)
	assert.Nil(t, result.Enrollment)
	require.NotNil(t, result.Checkout)
	assert.Equal(t, "order_paid_1", result.Checkout.OrderID)
	assert.Equal(t, uint(499), result.Checkout.Amount)
	assert.Equal(t, "INR", result.Checkout.Currency)
	assert.Equal(t, "rzp_test_key", result.Checkout.KeyID)

	var order models.PaymentOrder
	require.NoError(t, db.Where("gateway_order_id = ?", "order_paid_1").First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, uint(499), order.Amount)
	assert.False(t, order.Enrolled)

	// The paid path must not grant access before the payment clears.
	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
}

func TestVerifyPaymentEnrollsStudent(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_paid_2"))
	course := createCourse(t, db, 1, 499)

	_, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)

	enrolled, err := svc.VerifyPayment(Callback{
		PaymentID: "pay_abc",
		OrderID:   "order_paid_2",
		Signature: sign("order_paid_2", "pay_abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), enrolled.StudentID)
	assert.Equal(t, course.ID, enrolled.CourseID)
	assert.Equal(t, models.EnrollmentActive, enrolled.Status)
	require.NotNil(t, enrolled.PaymentOrderID)

	var order models.PaymentOrder
	require.NoError(t, db.Where("gateway_order_id = ?", "order_paid_2").First(&order).Error)
	assert.Equal(t, models.OrderStatusSucceeded, order.Status)
	assert.True(t, order.Enrolled)
	require.NotNil(t, order.GatewayPaymentID)
	assert.Equal(t, "pay_abc", *order.GatewayPaymentID)
	assert.Equal(t, order.ID, *enrolled.PaymentOrderID)
}

func TestVerifyPaymentBadSignatureWritesNothing(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_paid_3"))
	course := createCourse(t, db, 1, 499)

	_, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)

	_, err = svc.VerifyPayment(Callback{
		PaymentID: "pay_abc",
		OrderID:   "order_paid_3",
		Signature: "forged",
	})
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	var order models.PaymentOrder
	require.NoError(t, db.Where("gateway_order_id = ?", "order_paid_3").First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.GatewayPaymentID)

	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_paid_4"))

	_, err := svc.VerifyPayment(Callback{
		PaymentID: "pay_abc",
		OrderID:   "order_never_created",
		Signature: sign("order_never_created", "pay_abc"),
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyPaymentDuplicateEnrollmentIsBenign(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, setupGateway(t, "order_paid_5"))
	course := createCourse(t, db, 1, 499)

	_, err := svc.Enroll(2, course.ID)
	require.NoError(t, err)

	// The student got enrolled through another path while the checkout
	// was still open.
	existing := models.Enrollment{
		StudentID: 2,
		CourseID:  course.ID,
		TeacherID: 1,
		Status:    models.EnrollmentActive,
	}
	require.NoError(t, db.Create(&existing).Error)

	enrolled, err := svc.VerifyPayment(Callback{
		PaymentID: "pay_abc",
		OrderID:   "order_paid_5",
		Signature: sign("order_paid_5", "pay_abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, enrolled.ID)

	var count int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", 2, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
