package courseController

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateCourse creates a draft course owned by the authenticated teacher.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	tags, err := tagsJSON(reqData.Tags)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid tags!", nil)
	}

	course := models.Course{
		TeacherID:         userID,
		CategoryID:        category.ID,
		Title:             reqData.Title,
		Description:       reqData.Description,
		Price:             reqData.Price,
		Thumbnail:         reqData.Thumbnail,
		ThumbnailPublicID: reqData.PublicID,
		Tags:              tags,
		Level:             reqData.Level,
		IsPublished:       reqData.IsPublished,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetMyCourses lists all courses owned by the authenticated teacher.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("teacher_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetMyCourseDetails returns one owned course with its lectures.
func GetMyCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lectures []models.Lecture
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").Find(&lectures)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"lectures": lectures,
	})
}

// UpdateCourse updates the provided fields of an owned course.
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *uint    `json:"price"`
		CategoryID  *uint    `json:"category_id"`
		Level       *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
		Tags        []string `json:"tags"`
		Thumbnail   *string  `json:"thumbnail"`
		PublicID    *string  `json:"public_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.CategoryID != nil {
		var category models.Category
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CategoryID, false).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		course.CategoryID = category.ID
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Tags != nil {
		tags, err := tagsJSON(reqData.Tags)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid tags!", nil)
		}
		course.Tags = tags
	}
	if reqData.Thumbnail != nil {
		course.Thumbnail = *reqData.Thumbnail
		if reqData.PublicID != nil {
			course.ThumbnailPublicID = *reqData.PublicID
		}
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse flips an owned course to published.
func PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found to publish!", nil)
	}

	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is already published!", nil)
	}

	course.IsPublished = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", fiber.Map{
		"is_published": course.IsPublished,
	})
}

// DeleteCourse soft-deletes an owned course and everything hanging off it.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found to delete!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.Lecture{}, &models.Review{}, &models.Enrollment{}, &models.PaymentOrder{}} {
			if err := tx.Model(model).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetTeacherStats aggregates course, student and income numbers for the
// authenticated teacher's dashboard.
func GetTeacherStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalCourses int64
	db.Model(&models.Course{}).Where("teacher_id = ? AND is_deleted = ?", userID, false).Count(&totalCourses)

	var totalStudents int64
	db.Model(&models.Enrollment{}).
		Where("teacher_id = ? AND status = ? AND is_deleted = ?", userID, models.EnrollmentActive, false).
		Distinct("student_id").Count(&totalStudents)

	var totalIncome int64
	db.Model(&models.PaymentOrder{}).
		Where("teacher_id = ? AND status = ? AND is_deleted = ?", userID, models.OrderStatusSucceeded, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome)

	var enrollmentsToday int64
	db.Model(&models.Enrollment{}).
		Where("teacher_id = ? AND is_deleted = ? AND created_at >= ?", userID, false, now.BeginningOfDay()).
		Count(&enrollmentsToday)

	var avgRating float64
	db.Model(&models.Course{}).
		Where("teacher_id = ? AND is_deleted = ? AND num_reviews > 0", userID, false).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teacher stats fetched successfully!", fiber.Map{
		"totalCourses":     totalCourses,
		"totalStudents":    totalStudents,
		"totalIncome":      totalIncome,
		"teacherShare":     float64(totalIncome) * 0.7,
		"enrollmentsToday": enrollmentsToday,
		"averageRating":    avgRating,
	})
}

// GetThumbnailUploadSignature returns a signed payload for direct thumbnail upload.
func GetThumbnailUploadSignature(c *fiber.Ctx) error {
	cfg := config.AppConfig
	payload := utils.UploadSignature("course", cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload signature generated.", payload)
}

func tagsJSON(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
