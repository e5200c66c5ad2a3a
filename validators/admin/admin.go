package adminValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory validator middleware
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Thumbnail   string `json:"thumbnail"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// TeacherID validates the :teacherId route param.
func TeacherID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("teacherId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid teacher ID!", nil)
		}

		c.Locals("teacherID", uint(id))
		return c.Next()
	}
}
