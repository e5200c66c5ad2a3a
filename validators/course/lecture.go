package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UploadLecture validator middleware
func UploadLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			PublicID    string `json:"public_id"`
			Duration    int64  `json:"duration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Video URL
		if strings.TrimSpace(reqData.VideoURL) == "" {
			errors["video_url"] = "Video URL is required!"
		}

		// Validate Duration
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}
