package enrollmentController

import (
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	enrollmentService "lms/services/enrollment"
	"lms/services/payment"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

func newService() *enrollmentService.Service {
	cfg := config.AppConfig
	gateway := payment.NewGateway(payment.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Currency:  cfg.Currency,
	})
	return enrollmentService.NewService(database.Database.Db, gateway)
}

// EnrollInCourse enrolls the student directly for free courses, or returns
// the gateway checkout payload for priced ones.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	result, err := newService().Enroll(userID, courseID)
	if err != nil {
		if errors.Is(err, enrollmentService.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error enrolling user %d in course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	switch result.Outcome {
	case enrollmentService.OutcomeSelfEnrollment:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You cannot enroll in your own courses.", result)
	case enrollmentService.OutcomeAlreadyEnrolled:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You are already enrolled in this course.", result)
	case enrollmentService.OutcomeCheckoutRequired:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Complete the payment to enroll.", result)
	}

	go sendEnrollmentEmail(userID, courseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", result)
}

// VerifyPayment validates the gateway callback and commits the enrollment.
func VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentCallback").(*struct {
		PaymentID string `json:"razorpay_payment_id"`
		OrderID   string `json:"razorpay_order_id"`
		Signature string `json:"razorpay_signature"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrolled, err := newService().VerifyPayment(enrollmentService.Callback{
		PaymentID: reqData.PaymentID,
		OrderID:   reqData.OrderID,
		Signature: reqData.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, enrollmentService.ErrSignatureMismatch):
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment validation failed!", nil)
		case errors.Is(err, enrollmentService.ErrOrderNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment order not found!", nil)
		}
		log.Printf("Error verifying payment for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	go sendEnrollmentEmail(enrolled.StudentID, enrolled.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment validation done successfully.", fiber.Map{
		"enrolled": enrolled,
	})
}

// GetMyOrders lists the student's payment orders, newest first.
func GetMyOrders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var orders []models.PaymentOrder
	if err := database.Database.Db.Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": orders,
	})
}

func sendEnrollmentEmail(studentID, courseID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", studentID).First(&user).Error; err != nil {
		return
	}
	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}

	if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", user.Email, err)
	}
}
