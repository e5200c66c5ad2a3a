package courseValidator

import (
	"lms/middleware"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator builds a validator that reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = "This field is required!"
			case "min":
				errors[fe.Field()] = "Must be at least " + fe.Param() + " characters long!"
			case "oneof":
				errors[fe.Field()] = "Must be one of: " + fe.Param() + "!"
			default:
				errors[fe.Field()] = "Invalid value!"
			}
		}
	}
	return errors
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title" validate:"required,min=3"`
			Description string   `json:"description"`
			Price       uint     `json:"price"`
			CategoryID  uint     `json:"category_id" validate:"required"`
			Level       string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
			Tags        []string `json:"tags"`
			Thumbnail   string   `json:"thumbnail"`
			PublicID    string   `json:"public_id"`
			IsPublished bool     `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			Price       *uint    `json:"price"`
			CategoryID  *uint    `json:"category_id"`
			Level       *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
			Tags        []string `json:"tags"`
			Thumbnail   *string  `json:"thumbnail"`
			PublicID    *string  `json:"public_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title must be at least 3 characters long!",
			})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :courseId route param.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("courseId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// LectureID validates the :lectureId route param.
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("lectureId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture ID!", nil)
		}

		c.Locals("lectureID", uint(id))
		return c.Next()
	}
}
