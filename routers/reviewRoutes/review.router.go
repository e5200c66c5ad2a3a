package reviewRoutes

import (
	controllers "lms/controllers/review"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/review")

	reviewGroup.Get("/course/:courseId", middleware.OptionalJWTMiddleware, courseValidators.CourseID(), controllers.GetAllReviews)
	reviewGroup.Post("/course/:courseId", middleware.JWTMiddleware, courseValidators.CourseID(), validators.SubmitReview(), controllers.SubmitReview)
	reviewGroup.Delete("/course/:courseId", middleware.JWTMiddleware, courseValidators.CourseID(), controllers.DeleteReview)
}
