package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all teacher-facing course management routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher), middleware.RequireApprovedTeacher)

	// Course CRUD
	courseGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/my", controllers.GetMyCourses)
	courseGroup.Get("/stats", controllers.GetTeacherStats)
	courseGroup.Get("/thumbnail/upload-signature", controllers.GetThumbnailUploadSignature)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetMyCourseDetails)
	courseGroup.Put("/:courseId", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Patch("/:courseId/publish", validators.CourseID(), controllers.PublishCourse)
	courseGroup.Delete("/:courseId", validators.CourseID(), controllers.DeleteCourse)

	// Lecture management
	courseGroup.Get("/:courseId/lecture/upload-signature", validators.CourseID(), controllers.GetLectureUploadSignature)
	courseGroup.Post("/:courseId/lecture", validators.CourseID(), validators.UploadLecture(), controllers.UploadLecture)

	lectureGroup := app.Group("/lecture", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher), middleware.RequireApprovedTeacher)
	lectureGroup.Put("/:lectureId", validators.LectureID(), controllers.UpdateLecture)
	lectureGroup.Delete("/:lectureId", validators.LectureID(), controllers.DeleteLecture)
}
