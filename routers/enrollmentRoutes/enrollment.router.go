package enrollmentRoutes

import (
	controllers "lms/controllers/enrollment"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enroll", middleware.JWTMiddleware)

	enrollGroup.Post("/course/:courseId", courseValidators.CourseID(), controllers.EnrollInCourse)
	enrollGroup.Post("/payment/verify", validators.PaymentCallback(), controllers.VerifyPayment)
	enrollGroup.Get("/orders", controllers.GetMyOrders)
}
