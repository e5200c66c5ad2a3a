package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that checks the authenticated user holds
// one of the given roles. The role is re-read from the database so a stale
// token cannot keep privileges a user has lost.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("role", user.Role)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// RequireApprovedTeacher rejects teachers that an admin has not approved yet.
func RequireApprovedTeacher(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?", userID, models.RoleTeacher, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Only teachers can access this resource!", nil)
	}

	if !user.IsApproved {
		return JsonResponse(c, fiber.StatusForbidden, false, "You are not approved to upload courses yet!", nil)
	}

	return c.Next()
}
