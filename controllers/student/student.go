package studentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func teacherPreload(db *gorm.DB) *gorm.DB {
	return db.Select("id, name, avatar")
}

func categoryPreload(db *gorm.DB) *gorm.DB {
	return db.Select("id, name, slug")
}

// GetAllCourses lists published courses with pagination.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	query := db.Model(&models.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.
		Preload("Teacher", teacherPreload).
		Preload("Category", categoryPreload).
		Order("created_at desc").
		Offset((reqData.Page - 1) * reqData.Limit).
		Limit(reqData.Limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"page":  reqData.Page,
			"limit": reqData.Limit,
			"total": total,
		},
	})
}

// GetCourseDetails returns a published course's public view. Lecture video
// URLs are included only for actively enrolled students.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Preload("Teacher", teacherPreload).
		Preload("Category", categoryPreload).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		var enrollment models.Enrollment
		if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, models.EnrollmentActive, false).First(&enrollment).Error; err == nil {
			enrolled = true
		}
	}

	var lectures []models.Lecture
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").Find(&lectures)

	if !enrolled {
		for i := range lectures {
			lectures[i].VideoURL = ""
			lectures[i].PublicID = ""
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"lectures":   lectures,
		"isEnrolled": enrolled,
	})
}

// GetMyEnrolledCourses lists the student's active enrollments with their courses.
func GetMyEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("student_id = ? AND status = ? AND is_deleted = ?", userID, models.EnrollmentActive, false).
		Preload("Course", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Teacher", teacherPreload).Preload("Category", categoryPreload)
		}).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

// GetCourseLectures lists a course's lectures for an actively enrolled student.
func GetCourseLectures(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, models.EnrollmentActive, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var lectures []models.Lecture
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at asc").Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", fiber.Map{
		"lectures": lectures,
	})
}

// GetLecture returns one lecture, enrollment gated, for the watch page.
func GetLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	db := database.Database.Db

	var lecture models.Lecture
	if err := db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, lecture.CourseID, models.EnrollmentActive, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched successfully!", lecture)
}

// SearchCourses filters published courses by text, category, level and price,
// with sorting and pagination.
func SearchCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSearch").(*struct {
		Q        string `query:"q"`
		Category string `query:"category"`
		Level    string `query:"level"`
		MinPrice *uint  `query:"min_price"`
		MaxPrice *uint  `query:"max_price"`
		Sort     string `query:"sort"`
		Page     int    `query:"page"`
		Limit    int    `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	query := db.Model(&models.Course{}).Where("courses.is_published = ? AND courses.is_deleted = ?", true, false)

	if q := strings.TrimSpace(reqData.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(CAST(courses.tags AS TEXT)) LIKE ?",
			like, like, like,
		)
	}
	if reqData.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", reqData.Category)
	}
	if reqData.Level != "" {
		query = query.Where("courses.level = ?", reqData.Level)
	}
	if reqData.MinPrice != nil {
		query = query.Where("courses.price >= ?", *reqData.MinPrice)
	}
	if reqData.MaxPrice != nil {
		query = query.Where("courses.price <= ?", *reqData.MaxPrice)
	}

	switch reqData.Sort {
	case "price_asc":
		query = query.Order("courses.price asc")
	case "price_desc":
		query = query.Order("courses.price desc")
	case "rating":
		query = query.Order("courses.rating desc")
	case "oldest":
		query = query.Order("courses.created_at asc")
	default:
		query = query.Order("courses.created_at desc")
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.
		Preload("Teacher", teacherPreload).
		Preload("Category", categoryPreload).
		Offset((reqData.Page - 1) * reqData.Limit).
		Limit(reqData.Limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"page":  reqData.Page,
			"limit": reqData.Limit,
			"total": total,
		},
	})
}

// GetCategories lists all categories for browse filters.
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}
