package studentValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// CourseList validates pagination query params, applying defaults.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  int `query:"page"`
			Limit int `query:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query params!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = defaultLimit
		}
		if reqData.Limit > maxLimit {
			reqData.Limit = maxLimit
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// Search validates the course search and filter query params.
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Q        string `query:"q"`
			Category string `query:"category"`
			Level    string `query:"level"`
			MinPrice *uint  `query:"min_price"`
			MaxPrice *uint  `query:"max_price"`
			Sort     string `query:"sort"`
			Page     int    `query:"page"`
			Limit    int    `query:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query params!", nil)
		}

		errors := make(map[string]string)

		// Validate Level
		if reqData.Level != "" &&
			reqData.Level != models.LevelBeginner &&
			reqData.Level != models.LevelIntermediate &&
			reqData.Level != models.LevelAdvanced {
			errors["level"] = "Level must be beginner, intermediate or advanced!"
		}

		// Validate price range
		if reqData.MinPrice != nil && reqData.MaxPrice != nil && *reqData.MinPrice > *reqData.MaxPrice {
			errors["min_price"] = "min_price cannot be greater than max_price!"
		}

		// Validate Sort
		switch reqData.Sort {
		case "", "newest", "oldest", "price_asc", "price_desc", "rating":
		default:
			errors["sort"] = "Invalid sort option!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = defaultLimit
		}
		if reqData.Limit > maxLimit {
			reqData.Limit = maxLimit
		}

		c.Locals("validatedSearch", reqData)
		return c.Next()
	}
}
