package dashboardRoutes

import (
	controllers "lms/controllers/student"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the student-facing browse and watch routes
func SetupDashboardRoutes(app *fiber.App) {
	dashGroup := app.Group("/dashboard")

	// Public browsing
	dashGroup.Get("/courses", validators.CourseList(), controllers.GetAllCourses)
	dashGroup.Get("/courses/search", validators.Search(), controllers.SearchCourses)
	dashGroup.Get("/categories", controllers.GetCategories)
	dashGroup.Get("/course/:courseId", middleware.OptionalJWTMiddleware, courseValidators.CourseID(), controllers.GetCourseDetails)

	// Enrolled students
	dashGroup.Get("/my/courses", middleware.JWTMiddleware, controllers.GetMyEnrolledCourses)
	dashGroup.Get("/course/:courseId/lectures", middleware.JWTMiddleware, courseValidators.CourseID(), controllers.GetCourseLectures)
	dashGroup.Get("/lecture/:lectureId", middleware.JWTMiddleware, courseValidators.LectureID(), controllers.GetLecture)
}
