package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/teachers/pending", controllers.GetPendingTeachers)
	adminGroup.Patch("/teacher/:teacherId/approve", validators.TeacherID(), controllers.ApproveTeacher)
	adminGroup.Post("/category", validators.CreateCategory(), controllers.CreateCategory)
	adminGroup.Get("/categories", controllers.GetAllCategories)
}
